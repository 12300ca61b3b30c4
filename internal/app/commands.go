package app

import (
	"context"
	"fmt"

	"nuget-tools/internal/ports"
	"nuget-tools/internal/types"
)

func (e *Engine) ClearCache(ctx context.Context, sink ports.OutputSink) (RunResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	line, err := e.Builder.Build(types.InvocationRequest{Operation: types.OperationClearCache}, e.settings)
	if err != nil {
		return RunResult{}, err
	}
	sink.WriteLine("Clearing cache...")
	outcome, err := e.run(ctx, "", line, sink)
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{ExitCode: outcome.ExitCode}, nil
}

// Raw passes a console command line through to the executable in
// req.WorkingDirectory.
func (e *Engine) Raw(ctx context.Context, req types.InvocationRequest, sink ports.OutputSink) (RunResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req.Operation = types.OperationRaw
	line, err := e.Builder.Build(req, e.settings)
	if err != nil {
		return RunResult{}, err
	}
	sink.WriteLine(fmt.Sprintf("nuget %s:", req.RawCommand))
	outcome, err := e.run(ctx, req.WorkingDirectory, line, sink)
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{ExitCode: outcome.ExitCode}, nil
}
