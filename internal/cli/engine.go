package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nuget-tools/internal/adapters"
	"nuget-tools/internal/app"
	"nuget-tools/internal/shared"
)

func settingsStore() (adapters.SettingsFileAdapter, error) {
	path := strings.TrimSpace(viper.GetString("settings"))
	if path == "" {
		defaultPath, err := adapters.DefaultSettingsPath()
		if err != nil {
			return adapters.SettingsFileAdapter{}, err
		}
		path = defaultPath
	}
	return adapters.NewSettingsFileAdapter(path), nil
}

// newEngine loads the saved settings and builds an engine for one command.
func newEngine() (*app.Engine, error) {
	store, err := settingsStore()
	if err != nil {
		return nil, err
	}
	settings, err := store.Load()
	if err != nil {
		return nil, err
	}
	return app.NewEngine(settings, shared.FirstNonEmpty(viper.GetString("nuget_path"), app.DefaultExecutable)), nil
}

func newSink(cmd *cobra.Command) *adapters.ConsoleSink {
	return adapters.NewConsoleSink(cmd.OutOrStdout(), cmd.ErrOrStderr())
}
