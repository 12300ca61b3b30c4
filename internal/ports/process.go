package ports

import (
	"context"

	"nuget-tools/internal/types"
)

// ProcessRunnerPort runs one external process to completion, forwarding
// stdout lines to sink.WriteLine and stderr lines to sink.WriteErrorLine.
// A non-zero exit is returned as data; only a failure to launch is an
// error.
type ProcessRunnerPort interface {
	Run(ctx context.Context, executable string, workingDir string, args []string, sink OutputSink) (types.ProcessOutcome, error)
}
