package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"nuget-tools/internal/types"
)

type pushOptions struct {
	Delete bool
}

func newPushCommand() *cobra.Command {
	opts := pushOptions{}
	cmd := &cobra.Command{
		Use:   "push <package>",
		Short: "Push a package to the configured feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Delete, "delete", false, "Delete the package file after a successful push")
	return cmd
}

func runPush(ctx context.Context, cmd *cobra.Command, pkg string, opts pushOptions) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	result, err := engine.Push(ctx, types.InvocationRequest{PackagePath: pkg}, newSink(cmd))
	if err != nil {
		return err
	}
	if err := checkExit("push", result.ExitCode); err != nil {
		return err
	}
	if !opts.Delete {
		return nil
	}
	if err := engine.DeleteArtifact(pkg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted: %s\n", pkg)
	return nil
}
