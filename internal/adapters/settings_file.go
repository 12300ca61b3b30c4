package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"nuget-tools/internal/ports"
	"nuget-tools/internal/types"
)

const settingsFileName = "settings.yaml"

type SettingsFileAdapter struct {
	Path string
}

func NewSettingsFileAdapter(path string) SettingsFileAdapter {
	return SettingsFileAdapter{Path: path}
}

// DefaultSettingsPath is settings.yaml under the user's config directory.
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to locate user config directory").
			WithCause(err)
	}
	return filepath.Join(dir, "nuget-tools", settingsFileName), nil
}

// Load reads the settings file. A missing file is created with the
// built-in defaults, which are also returned.
func (a SettingsFileAdapter) Load() (types.Settings, error) {
	if strings.TrimSpace(a.Path) == "" {
		return types.Settings{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("settings path is empty")
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		if !os.IsNotExist(err) {
			return types.Settings{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read settings file").
				WithCause(err)
		}
		defaults := types.DefaultSettings()
		if err := a.Save(defaults); err != nil {
			return types.Settings{}, err
		}
		return defaults, nil
	}
	settings := types.DefaultSettings()
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return types.Settings{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid settings file").
			WithCause(err)
	}
	if settings.Verbosity == "" {
		settings.Verbosity = types.DefaultSettings().Verbosity
	}
	verbosity, err := types.ParseVerbosity(string(settings.Verbosity))
	if err != nil {
		return types.Settings{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid verbosity in settings file").
			WithCause(err)
	}
	return settings.WithVerbosity(verbosity), nil
}

func (a SettingsFileAdapter) Save(settings types.Settings) error {
	if strings.TrimSpace(a.Path) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("settings path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(a.Path), 0o750); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create settings directory").
			WithCause(err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode settings").
			WithCause(err)
	}
	// The file holds the feed key.
	if err := os.WriteFile(a.Path, data, 0o600); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write settings file").
			WithCause(err)
	}
	return nil
}

var _ ports.SettingsStorePort = SettingsFileAdapter{}
