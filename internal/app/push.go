package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"nuget-tools/internal/ports"
	"nuget-tools/internal/types"
)

// Push sends req.PackagePath to the configured feed. Missing credentials
// are rejected before anything is launched.
func (e *Engine) Push(ctx context.Context, req types.InvocationRequest, sink ports.OutputSink) (RunResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req.Operation = types.OperationPush
	req.PackagePath = strings.TrimSpace(req.PackagePath)
	line, err := e.Builder.Build(req, e.settings)
	if err != nil {
		return RunResult{}, err
	}
	sink.WriteLine(fmt.Sprintf("Pushing '%s' to '%s'...", filepath.Base(req.PackagePath), e.settings.Feed.URL))
	outcome, err := e.run(ctx, req.WorkingDirectory, line, sink)
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{ExitCode: outcome.ExitCode}, nil
}

// DeleteArtifact removes a package file, typically after it was pushed.
func (e *Engine) DeleteArtifact(path string) error {
	if strings.TrimSpace(path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package path is empty")
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("package file not found").
				WithCause(err)
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to delete package file").
			WithCause(err)
	}
	return nil
}
