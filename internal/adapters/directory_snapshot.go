package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"nuget-tools/internal/ports"
	"nuget-tools/internal/types"
)

const PackagePattern = "*.nupkg"

type DirectorySnapshotAdapter struct{}

func NewDirectorySnapshotAdapter() DirectorySnapshotAdapter {
	return DirectorySnapshotAdapter{}
}

func (a DirectorySnapshotAdapter) Snapshot(dir string, pattern string) (types.ArtifactSet, error) {
	if strings.TrimSpace(dir) == "" {
		return types.ArtifactSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("snapshot directory is empty")
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return types.ArtifactSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid snapshot pattern").
			WithCause(err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return types.ArtifactSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to resolve snapshot directory").
			WithCause(err)
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		if os.IsNotExist(err) {
			return types.NewArtifactSet(absDir, pattern, nil), nil
		}
		return types.ArtifactSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list snapshot directory").
			WithCause(err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(pattern, entry.Name()); !ok {
			continue
		}
		paths = append(paths, filepath.Join(absDir, entry.Name()))
	}
	return types.NewArtifactSet(absDir, pattern, paths), nil
}

var _ ports.DirectorySnapshotPort = DirectorySnapshotAdapter{}
