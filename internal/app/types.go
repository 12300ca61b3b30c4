package app

import "nuget-tools/internal/types"

type PackResult struct {
	ExitCode  int32
	OutputDir string
	PackageID string
	Artifact  types.ResolvedArtifact
}

type SpecResult struct {
	ExitCode     int32
	ManifestPath string
}

type RunResult struct {
	ExitCode int32
}
