package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"nuget-tools/internal/types"
)

type specOptions struct {
	Force bool
}

func newSpecCommand() *cobra.Command {
	opts := specOptions{}
	cmd := &cobra.Command{
		Use:   "spec <project>",
		Short: "Generate a nuspec manifest next to a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpec(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing nuspec file")
	return cmd
}

func runSpec(ctx context.Context, cmd *cobra.Command, project string, opts specOptions) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	result, err := engine.Spec(ctx, types.InvocationRequest{
		ProjectPath: project,
		Force:       opts.Force,
	}, newSink(cmd))
	if err != nil {
		return err
	}
	if err := checkExit("spec", result.ExitCode); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "manifest: %s\n", result.ManifestPath)
	return nil
}
