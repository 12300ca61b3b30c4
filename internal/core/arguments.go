package core

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/mattn/go-shellwords"

	"nuget-tools/internal/shared"
	"nuget-tools/internal/types"
)

const redactedValue = "***"

// CommandLine is the argv handed to the packaging executable, subcommand
// first and the verbosity flag last.
type CommandLine struct {
	Args   []string
	secret string
}

// String renders the arguments the way they would be typed in a shell.
func (c CommandLine) String() string {
	return renderArgs(c.Args, "")
}

// Redacted renders like String but hides the feed key.
func (c CommandLine) Redacted() string {
	return renderArgs(c.Args, c.secret)
}

func renderArgs(args []string, secret string) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		if secret != "" && arg == secret {
			parts = append(parts, redactedValue)
			continue
		}
		parts = append(parts, shared.QuoteArg(arg))
	}
	return strings.Join(parts, " ")
}

type ArgumentBuilder struct{}

func NewArgumentBuilder() ArgumentBuilder {
	return ArgumentBuilder{}
}

// Build maps a request and the settings snapshot to a command line. It
// launches nothing; a push without credentials fails here.
func (b ArgumentBuilder) Build(req types.InvocationRequest, settings types.Settings) (CommandLine, error) {
	var line CommandLine
	switch req.Operation {
	case types.OperationPack:
		args, err := packArgs(req, settings)
		if err != nil {
			return CommandLine{}, err
		}
		line.Args = args
	case types.OperationSpec:
		line.Args = []string{"spec"}
		if req.Force {
			line.Args = append(line.Args, "-Force")
		}
	case types.OperationPush:
		args, err := pushArgs(req, settings)
		if err != nil {
			return CommandLine{}, err
		}
		line.Args = args
		line.secret = settings.Feed.Key
	case types.OperationClearCache:
		line.Args = []string{"locals", "all", "-clear"}
	case types.OperationRaw:
		args, err := rawArgs(req)
		if err != nil {
			return CommandLine{}, err
		}
		line.Args = args
	default:
		return CommandLine{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported operation: %s", req.Operation))
	}
	line.Args = append(line.Args, "-Verbosity", string(verbosityOrDefault(settings.Verbosity)))
	return line, nil
}

// EffectiveOutputDir returns the configured default output directory as an
// absolute path when it is set and enabled, and requested verbatim
// otherwise.
func EffectiveOutputDir(settings types.Settings, requested string) string {
	if strings.TrimSpace(settings.DefaultOutputDir) == "" || !settings.UseDefaultOutput {
		return requested
	}
	abs, err := filepath.Abs(settings.DefaultOutputDir)
	if err != nil {
		return filepath.Clean(settings.DefaultOutputDir)
	}
	return abs
}

func packArgs(req types.InvocationRequest, settings types.Settings) ([]string, error) {
	if strings.TrimSpace(req.ProjectPath) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project path is empty")
	}
	args := []string{"pack", req.ProjectPath}
	if settings.BuildBeforePack {
		args = append(args, "-Build")
	}
	if settings.IncludeReferencedProjects {
		args = append(args, "-IncludeReferencedProjects")
	}
	if settings.IncludeSymbols {
		args = append(args, "-Symbols")
	}
	if version := strings.TrimSpace(req.VersionOverride); version != "" {
		args = append(args, "-Version", version)
	}
	args = append(args, "-OutputDirectory", EffectiveOutputDir(settings, req.OutputDir))
	return args, nil
}

func pushArgs(req types.InvocationRequest, settings types.Settings) ([]string, error) {
	if strings.TrimSpace(settings.Feed.URL) == "" {
		return nil, missingCredential(MsgMissingFeedURL)
	}
	if strings.TrimSpace(settings.Feed.Key) == "" {
		return nil, missingCredential(MsgMissingFeedKey)
	}
	if strings.TrimSpace(req.PackagePath) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package path is empty")
	}
	return []string{"push", req.PackagePath, settings.Feed.Key, "-Source", settings.Feed.URL}, nil
}

func rawArgs(req types.InvocationRequest) ([]string, error) {
	command, err := shellwords.Parse(req.RawCommand)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse raw command").
			WithCause(err)
	}
	if len(command) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("raw command is empty")
	}
	extra, err := shellwords.Parse(req.RawArguments)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse raw arguments").
			WithCause(err)
	}
	return append(command, extra...), nil
}

func verbosityOrDefault(v types.Verbosity) types.Verbosity {
	if v == "" {
		return types.VerbosityNormal
	}
	return v
}
