package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"nuget-tools/internal/types"
)

const (
	keyFeedURL          = "feed.url"
	keyFeedKey          = "feed.key"
	keyVerbosity        = "verbosity"
	keySymbols          = "include_symbols"
	keyReferences       = "include_referenced_projects"
	keyBuild            = "build_before_pack"
	keyDefaultOutputDir = "default_output_dir"
	keyUseDefaultOutput = "use_default_output"
)

var settingKeys = []string{
	keyFeedURL, keyFeedKey, keyVerbosity, keySymbols,
	keyReferences, keyBuild, keyDefaultOutputDir, keyUseDefaultOutput,
}

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the saved settings",
	}
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigPathCommand())
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved settings with the feed key hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := settingsStore()
			if err != nil {
				return err
			}
			settings, err := store.Load()
			if err != nil {
				return err
			}
			if settings.Feed.Key != "" {
				settings.Feed.Key = "***"
			}
			data, err := yaml.Marshal(settings)
			if err != nil {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to render settings").
					WithCause(err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Change one saved setting",
		Long:      "Change one saved setting. Keys: " + strings.Join(settingKeys, ", "),
		Args:      cobra.ExactArgs(2),
		ValidArgs: settingKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := settingsStore()
			if err != nil {
				return err
			}
			settings, err := store.Load()
			if err != nil {
				return err
			}
			updated, err := applySetting(settings, args[0], args[1])
			if err != nil {
				return err
			}
			if err := store.Save(updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s\n", args[0])
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := settingsStore()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path)
			return nil
		},
	}
}

// applySetting returns a copy of settings with one key changed.
func applySetting(settings types.Settings, key string, value string) (types.Settings, error) {
	switch key {
	case keyFeedURL:
		return settings.WithFeed(strings.TrimSpace(value), settings.Feed.Key), nil
	case keyFeedKey:
		return settings.WithFeed(settings.Feed.URL, strings.TrimSpace(value)), nil
	case keyVerbosity:
		verbosity, err := types.ParseVerbosity(value)
		if err != nil {
			return settings, err
		}
		return settings.WithVerbosity(verbosity), nil
	case keyDefaultOutputDir:
		return settings.WithDefaultOutput(strings.TrimSpace(value), settings.UseDefaultOutput), nil
	}
	if !isBoolKey(key) {
		return settings, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown setting: %s (expected one of %s)", key, strings.Join(settingKeys, ", ")))
	}

	enabled, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return settings, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid boolean for %s: %s", key, value)).
			WithCause(err)
	}
	switch key {
	case keySymbols:
		return settings.WithSymbols(enabled), nil
	case keyReferences:
		return settings.WithReferencedProjects(enabled), nil
	case keyBuild:
		return settings.WithBuild(enabled), nil
	default:
		return settings.WithDefaultOutput(settings.DefaultOutputDir, enabled), nil
	}
}

func isBoolKey(key string) bool {
	switch key {
	case keySymbols, keyReferences, keyBuild, keyUseDefaultOutput:
		return true
	}
	return false
}
