package adapters

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuget-tools/internal/types"
)

func TestSettingsFileAdapterCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	store := NewSettingsFileAdapter(path)

	settings, err := store.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(types.DefaultSettings(), settings); diff != "" {
		t.Fatalf("unexpected defaults (-want +got):\n%s", diff)
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, settings, again)
}

func TestSettingsFileAdapterRoundTrip(t *testing.T) {
	store := NewSettingsFileAdapter(filepath.Join(t.TempDir(), "settings.yaml"))
	want := types.DefaultSettings().
		WithFeed("https://feed.example.com/v3/index.json", "key-123").
		WithVerbosity(types.VerbosityQuiet).
		WithSymbols(false).
		WithReferencedProjects(false).
		WithBuild(false).
		WithDefaultOutput("/srv/packages", true)

	require.NoError(t, store.Save(want))
	got, err := store.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSettingsFileAdapterPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feed:\n  url: https://feed.example.com\nverbosity: Normal\n"), 0o600))

	got, err := NewSettingsFileAdapter(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "https://feed.example.com", got.Feed.URL)
	assert.Equal(t, types.VerbosityNormal, got.Verbosity)
	assert.True(t, got.IncludeSymbols)
	assert.True(t, got.BuildBeforePack)
}

func TestSettingsFileAdapterRejectsInvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown verbosity", content: "verbosity: loud\n"},
		{name: "malformed yaml", content: "feed: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			_, err := NewSettingsFileAdapter(path).Load()
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestSettingsFileAdapterEmptyPath(t *testing.T) {
	_, err := NewSettingsFileAdapter("").Load()
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	require.Error(t, NewSettingsFileAdapter(" ").Save(types.DefaultSettings()))
}
