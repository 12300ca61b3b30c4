package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"nuget-tools/internal/app"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "NUGET_TOOLS"

type RootConfig struct {
	ConfigFile   string
	LogLevel     string
	NuGetPath    string
	SettingsPath string
}

func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(exitCodeForError(err))
	}
}

// reportError prints the short message of err; the full cause chain only
// goes to the debug log.
func reportError(w io.Writer, err error) {
	log.Debug().Err(err).Msg("command failed")
	fmt.Fprintf(w, "Error: %s\n", errorMessage(err))
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:           "nuget-tools",
		Short:         "Drive nuget pack, spec and push from saved settings",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	cmd.PersistentFlags().StringVar(&cfg.NuGetPath, "nuget", app.DefaultExecutable, "Path to the nuget executable")
	cmd.PersistentFlags().StringVar(&cfg.SettingsPath, "settings", "", "Settings file path (defaults to the user config directory)")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("nuget_path", cmd.PersistentFlags().Lookup("nuget"))
	_ = viper.BindPFlag("settings", cmd.PersistentFlags().Lookup("settings"))

	cmd.AddCommand(newPackCommand())
	cmd.AddCommand(newSpecCommand())
	cmd.AddCommand(newPushCommand())
	cmd.AddCommand(newClearCacheCommand())
	cmd.AddCommand(newRawCommand())
	cmd.AddCommand(newConfigCommand())
	return cmd
}

func initConfig(configFile string) error {
	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("nuget-tools")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/nuget-tools")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// exitStatusError reports a packaging run that completed with a non-zero
// exit code. The CLI exits with the same code.
type exitStatusError struct {
	Command  string
	ExitCode int32
}

func (e exitStatusError) Error() string {
	return fmt.Sprintf("nuget %s exited with code %d", e.Command, e.ExitCode)
}

func checkExit(command string, code int32) error {
	if code == 0 {
		return nil
	}
	return exitStatusError{Command: command, ExitCode: code}
}

func exitCodeForError(err error) int {
	var status exitStatusError
	if errors.As(err, &status) {
		return int(status.ExitCode)
	}
	switch errbuilder.CodeOf(err) {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition, errbuilder.CodePermissionDenied:
		return 3
	case errbuilder.CodeNotFound, errbuilder.CodeInternal:
		return 5
	case errbuilder.CodeUnavailable:
		return 6
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
