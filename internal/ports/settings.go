package ports

import "nuget-tools/internal/types"

// SettingsStorePort persists operator preference snapshots. Load on a
// store that does not exist yet returns the defaults and persists them.
type SettingsStorePort interface {
	Load() (types.Settings, error)
	Save(settings types.Settings) error
}
