package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nuget-tools/internal/types"
)

func newClearCacheCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Clear all local nuget caches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			engine, err := newEngine()
			if err != nil {
				return err
			}
			result, err := engine.ClearCache(cmd.Context(), newSink(cmd))
			if err != nil {
				return err
			}
			return checkExit("locals", result.ExitCode)
		},
	}
}

type rawOptions struct {
	WorkingDir string
}

func newRawCommand() *cobra.Command {
	opts := rawOptions{}
	cmd := &cobra.Command{
		Use:   "raw <command> [args...]",
		Short: "Run an arbitrary nuget command",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRaw(cmd.Context(), cmd, args, opts)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&opts.WorkingDir, "working-dir", "", "Working directory for nuget")
	_ = viper.BindPFlag("working_dir", cmd.Flags().Lookup("working-dir"))
	return cmd
}

func runRaw(ctx context.Context, cmd *cobra.Command, args []string, opts rawOptions) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	result, err := engine.Raw(ctx, types.InvocationRequest{
		RawCommand:       args[0],
		RawArguments:     joinArgs(args[1:]),
		WorkingDirectory: resolveString(cmd, opts.WorkingDir, "working_dir", "working-dir"),
	}, newSink(cmd))
	if err != nil {
		return err
	}
	return checkExit(args[0], result.ExitCode)
}

const shellSpecial = " \t\n\"'\\;&|<>$`"

// joinArgs re-quotes arguments the shell already split so the engine's
// shell-word parsing yields them back unchanged.
func joinArgs(args []string) string {
	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		if arg != "" && !strings.ContainsAny(arg, shellSpecial) {
			quoted = append(quoted, arg)
			continue
		}
		quoted = append(quoted, "'"+strings.ReplaceAll(arg, "'", `'\''`)+"'")
	}
	return strings.Join(quoted, " ")
}
