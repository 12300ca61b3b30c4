package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"nuget-tools/internal/ports"
	"nuget-tools/internal/types"
)

// Spec generates a .nuspec manifest next to the project. An existing
// manifest is only overwritten when req.Force is set.
func (e *Engine) Spec(ctx context.Context, req types.InvocationRequest, sink ports.OutputSink) (SpecResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req.Operation = types.OperationSpec
	project := strings.TrimSpace(req.ProjectPath)
	if project == "" {
		return SpecResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project path is required")
	}
	project = inWorkingDir(req.WorkingDirectory, project)
	req.ProjectPath = project
	projectDir := filepath.Dir(project)
	manifests, err := e.Identity.FindManifests(projectDir)
	if err != nil {
		return SpecResult{}, err
	}
	if len(manifests) > 0 && !req.Force {
		return SpecResult{}, errbuilder.New().
			WithCode(errbuilder.CodeAlreadyExists).
			WithMsg(fmt.Sprintf("project already contains a nuspec file: %s", filepath.Base(manifests[0])))
	}
	line, err := e.Builder.Build(req, e.settings)
	if err != nil {
		return SpecResult{}, err
	}

	sink.WriteLine(fmt.Sprintf("Creating nuspec file for '%s'...", filepath.Base(project)))
	outcome, err := e.run(ctx, projectDir, line, sink)
	if err != nil {
		return SpecResult{}, err
	}
	base := strings.TrimSuffix(filepath.Base(project), filepath.Ext(project))
	return SpecResult{
		ExitCode:     outcome.ExitCode,
		ManifestPath: filepath.Join(projectDir, base+".nuspec"),
	}, nil
}
