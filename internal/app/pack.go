package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"nuget-tools/internal/adapters"
	"nuget-tools/internal/core"
	"nuget-tools/internal/ports"
	"nuget-tools/internal/types"
)

// Pack builds a package from req.ProjectPath and works out which file it
// produced. A non-zero exit or an unidentifiable artifact is reported in
// the result, not as an error.
func (e *Engine) Pack(ctx context.Context, req types.InvocationRequest, sink ports.OutputSink) (PackResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req.Operation = types.OperationPack
	project := strings.TrimSpace(req.ProjectPath)
	if project == "" {
		return PackResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project path is required")
	}
	project = inWorkingDir(req.WorkingDirectory, project)
	req.ProjectPath = project
	if strings.TrimSpace(req.OutputDir) == "" {
		req.OutputDir = filepath.Dir(project)
	}
	req.OutputDir = inWorkingDir(req.WorkingDirectory, req.OutputDir)
	line, err := e.Builder.Build(req, e.settings)
	if err != nil {
		return PackResult{}, err
	}
	outputDir := core.EffectiveOutputDir(e.settings, req.OutputDir)

	packageID, err := e.Identity.PackageID(project, req.AssemblyNameHint)
	if err != nil {
		log.Warn().Err(err).Str("project", project).Msg("could not read package id from manifest")
	}

	before, err := e.Snapshots.Snapshot(outputDir, adapters.PackagePattern)
	if err != nil {
		return PackResult{}, err
	}

	sink.WriteLine(fmt.Sprintf("Creating package for '%s' at '%s'...", filepath.Base(project), outputDir))
	outcome, err := e.run(ctx, req.WorkingDirectory, line, sink)
	if err != nil {
		return PackResult{}, err
	}
	result := PackResult{
		ExitCode:  outcome.ExitCode,
		OutputDir: outputDir,
		PackageID: packageID,
	}
	if !outcome.Succeeded() {
		return result, nil
	}

	after, err := e.Snapshots.Snapshot(outputDir, adapters.PackagePattern)
	if err != nil {
		return result, err
	}
	result.Artifact = e.Resolver.Resolve(before, after, e.settings.IncludeSymbols)
	reportArtifact(sink, outputDir, result.Artifact)
	return result, nil
}

func reportArtifact(sink ports.OutputSink, outputDir string, artifact types.ResolvedArtifact) {
	switch artifact.Reason {
	case types.UnresolvedNone:
		log.Info().Str("artifact", artifact.Path).Msg("package created")
	case types.UnresolvedNoNew:
		sink.WriteWarningLine(fmt.Sprintf("No new package was found in '%s'. Locate the package manually if one was created.", outputDir))
	case types.UnresolvedAmbiguous:
		sink.WriteWarningLine(fmt.Sprintf("Could not identify the created package among %d new files in '%s'. Locate it manually:", len(artifact.Candidates), outputDir))
		for _, candidate := range artifact.Candidates {
			sink.WriteWarningLine("  " + candidate)
		}
	}
}

// inWorkingDir anchors a relative path at the child's working directory so
// the engine looks where the tool writes.
func inWorkingDir(workingDir string, path string) string {
	if strings.TrimSpace(workingDir) == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workingDir, path)
}
