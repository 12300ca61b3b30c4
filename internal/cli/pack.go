package cli

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nuget-tools/internal/types"
)

type packOptions struct {
	OutputDir    string
	Version      string
	AssemblyName string
	WorkingDir   string
	Push         bool
}

func newPackCommand() *cobra.Command {
	opts := packOptions{}
	cmd := &cobra.Command{
		Use:   "pack <project>",
		Short: "Create a package from a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Output directory (defaults to the project directory)")
	cmd.Flags().StringVar(&opts.Version, "package-version", "", "Override the package version")
	cmd.Flags().StringVar(&opts.AssemblyName, "assembly-name", "", "Assembly name used when the manifest has no usable id")
	cmd.Flags().StringVar(&opts.WorkingDir, "working-dir", "", "Working directory for nuget")
	cmd.Flags().BoolVar(&opts.Push, "push", false, "Push the created package to the configured feed")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("push", cmd.Flags().Lookup("push"))
	return cmd
}

func runPack(ctx context.Context, cmd *cobra.Command, project string, opts packOptions) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	sink := newSink(cmd)
	result, err := engine.Pack(ctx, types.InvocationRequest{
		ProjectPath:      project,
		OutputDir:        resolveString(cmd, opts.OutputDir, "output", "output"),
		VersionOverride:  opts.Version,
		AssemblyNameHint: opts.AssemblyName,
		WorkingDirectory: opts.WorkingDir,
	}, sink)
	if err != nil {
		return err
	}
	if err := checkExit("pack", result.ExitCode); err != nil {
		return err
	}
	if !resolveBool(cmd, opts.Push, "push", "push") {
		return nil
	}
	if !result.Artifact.Resolved() {
		sink.WriteWarningLine("The created package could not be identified; skipping push.")
		return nil
	}
	log.Debug().Str("package_id", result.PackageID).Str("artifact", result.Artifact.Path).Msg("pushing created package")
	pushed, err := engine.Push(ctx, types.InvocationRequest{PackagePath: result.Artifact.Path}, sink)
	if err != nil {
		return err
	}
	return checkExit("push", pushed.ExitCode)
}
