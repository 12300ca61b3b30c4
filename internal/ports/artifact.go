package ports

import "nuget-tools/internal/types"

// DirectorySnapshotPort lists the files matching pattern in dir. A missing
// directory yields an empty set.
type DirectorySnapshotPort interface {
	Snapshot(dir string, pattern string) (types.ArtifactSet, error)
}

// PackageIdentityPort recovers package identifiers from project manifests.
type PackageIdentityPort interface {
	// FindManifests returns the .nuspec files directly inside projectDir.
	FindManifests(projectDir string) ([]string, error)

	// PackageID returns the manifest <id> when exactly one manifest with a
	// single literal id sits next to the project, and hint otherwise.
	PackageID(projectPath string, hint string) (string, error)
}
