package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"nuget-tools/internal/adapters"
	"nuget-tools/internal/core"
	"nuget-tools/internal/ports"
	"nuget-tools/internal/types"
)

const DefaultExecutable = "nuget"

// Engine drives the packaging executable for one settings snapshot. It
// runs at most one invocation at a time; separate engines are independent
// and may run concurrently.
type Engine struct {
	Builder    core.ArgumentBuilder
	Resolver   core.ArtifactResolver
	Runner     ports.ProcessRunnerPort
	Snapshots  ports.DirectorySnapshotPort
	Identity   ports.PackageIdentityPort
	Executable string

	mu       sync.Mutex
	settings types.Settings
}

func NewEngine(settings types.Settings, executable string) *Engine {
	if executable == "" {
		executable = DefaultExecutable
	}
	return &Engine{
		Builder:    core.NewArgumentBuilder(),
		Resolver:   core.NewArtifactResolver(),
		Runner:     adapters.NewProcessRunnerAdapter(),
		Snapshots:  adapters.NewDirectorySnapshotAdapter(),
		Identity:   adapters.NewNuspecAdapter(),
		Executable: executable,
		settings:   settings,
	}
}

// Settings returns a copy of the snapshot the engine was built with.
func (e *Engine) Settings() types.Settings {
	return e.settings
}

func (e *Engine) run(ctx context.Context, workingDir string, line core.CommandLine, sink ports.OutputSink) (types.ProcessOutcome, error) {
	log.Debug().
		Str("command", line.Redacted()).
		Str("dir", workingDir).
		Msg("running packaging executable")
	return e.Runner.Run(ctx, e.Executable, workingDir, line.Args, sink)
}
