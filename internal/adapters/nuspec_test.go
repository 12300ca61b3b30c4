package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nuspecTemplate = `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd">
  <metadata>
    <id>%s</id>
    <version>1.0.0</version>
    <authors>someone</authors>
    <dependencies>
      <dependency id="Newtonsoft.Json" version="13.0.1" />
    </dependencies>
  </metadata>
</package>
`

func writeProject(t *testing.T, dir string, manifests map[string]string) string {
	t.Helper()
	project := filepath.Join(dir, "Foo.csproj")
	require.NoError(t, os.WriteFile(project, []byte("<Project />"), 0o644))
	for name, content := range manifests {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return project
}

func TestNuspecAdapterPackageID(t *testing.T) {
	tests := []struct {
		name      string
		manifests map[string]string
		want      string
	}{
		{
			name:      "no manifest falls back to hint",
			manifests: nil,
			want:      "Foo.Assembly",
		},
		{
			name:      "literal id wins",
			manifests: map[string]string{"Foo.nuspec": sprintfNuspec("Company.Foo")},
			want:      "Company.Foo",
		},
		{
			name:      "token id falls back to hint",
			manifests: map[string]string{"Foo.nuspec": sprintfNuspec("$id$")},
			want:      "Foo.Assembly",
		},
		{
			name: "several manifests fall back to hint",
			manifests: map[string]string{
				"Foo.nuspec": sprintfNuspec("Company.Foo"),
				"Bar.nuspec": sprintfNuspec("Company.Bar"),
			},
			want: "Foo.Assembly",
		},
		{
			name: "several id elements fall back to hint",
			manifests: map[string]string{
				"Foo.nuspec": `<package><metadata><id>A</id><id>B</id></metadata></package>`,
			},
			want: "Foo.Assembly",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := writeProject(t, t.TempDir(), tt.manifests)
			got, err := NewNuspecAdapter().PackageID(project, "Foo.Assembly")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNuspecAdapterInvalidManifest(t *testing.T) {
	project := writeProject(t, t.TempDir(), map[string]string{"Foo.nuspec": "<package><metadata>"})
	got, err := NewNuspecAdapter().PackageID(project, "hint")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Equal(t, "hint", got)
}

func TestNuspecAdapterReloadsChangedManifest(t *testing.T) {
	dir := t.TempDir()
	project := writeProject(t, dir, map[string]string{"Foo.nuspec": sprintfNuspec("First")})
	adapter := NewNuspecAdapter()

	got, err := adapter.PackageID(project, "hint")
	require.NoError(t, err)
	assert.Equal(t, "First", got)

	manifest := filepath.Join(dir, "Foo.nuspec")
	require.NoError(t, os.WriteFile(manifest, []byte(sprintfNuspec("Second")), 0o644))
	info, err := os.Stat(manifest)
	require.NoError(t, err)
	later := info.ModTime().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(manifest, later, later))

	got, err = adapter.PackageID(project, "hint")
	require.NoError(t, err)
	assert.Equal(t, "Second", got)
}

func TestNuspecAdapterFindManifests(t *testing.T) {
	dir := t.TempDir()
	writeProject(t, dir, map[string]string{
		"B.nuspec": sprintfNuspec("B"),
		"A.NUSPEC": sprintfNuspec("A"),
		"notes.md": "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.nuspec"), 0o755))

	manifests, err := NewNuspecAdapter().FindManifests(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "A.NUSPEC"), filepath.Join(dir, "B.nuspec")}, manifests)

	_, err = NewNuspecAdapter().FindManifests(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func sprintfNuspec(id string) string {
	return fmt.Sprintf(nuspecTemplate, id)
}
