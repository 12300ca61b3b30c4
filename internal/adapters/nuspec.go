package adapters

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"nuget-tools/internal/ports"
)

const manifestExt = ".nuspec"

// NuspecAdapter reads package ids from .nuspec manifests. Parsed manifests
// are cached until their modification time changes.
type NuspecAdapter struct {
	mu    sync.Mutex
	cache map[string]nuspecCacheEntry
}

func NewNuspecAdapter() *NuspecAdapter {
	return &NuspecAdapter{cache: map[string]nuspecCacheEntry{}}
}

type nuspecDocument struct {
	Metadata []nuspecMetadata `xml:"metadata"`
}

type nuspecMetadata struct {
	IDs []string `xml:"id"`
}

type nuspecCacheEntry struct {
	modTime time.Time
	ids     []string
}

func (a *NuspecAdapter) FindManifests(projectDir string) ([]string, error) {
	if strings.TrimSpace(projectDir) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project directory is empty")
	}
	entries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read project directory").
			WithCause(err)
	}
	var manifests []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), manifestExt) {
			continue
		}
		manifests = append(manifests, filepath.Join(projectDir, entry.Name()))
	}
	sort.Strings(manifests)
	return manifests, nil
}

func (a *NuspecAdapter) PackageID(projectPath string, hint string) (string, error) {
	manifests, err := a.FindManifests(filepath.Dir(projectPath))
	if err != nil {
		return hint, err
	}
	if len(manifests) != 1 {
		return hint, nil
	}
	entry, err := a.load(manifests[0])
	if err != nil {
		return hint, err
	}
	if len(entry.ids) != 1 {
		return hint, nil
	}
	// Tokens such as $id$ are substituted by the packaging tool from the
	// project, so they say nothing about the final name.
	id := entry.ids[0]
	if id == "" || strings.Contains(id, "$") {
		return hint, nil
	}
	return id, nil
}

func (a *NuspecAdapter) load(path string) (nuspecCacheEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nuspecCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read nuspec").
			WithCause(err)
	}
	a.mu.Lock()
	if entry, ok := a.cache[path]; ok && entry.modTime.Equal(info.ModTime()) {
		a.mu.Unlock()
		return entry, nil
	}
	a.mu.Unlock()

	content, err := os.ReadFile(path)
	if err != nil {
		return nuspecCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read nuspec").
			WithCause(err)
	}
	var doc nuspecDocument
	if err := xml.Unmarshal(content, &doc); err != nil {
		return nuspecCacheEntry{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse nuspec").
			WithCause(err)
	}
	entry := nuspecCacheEntry{modTime: info.ModTime()}
	for _, metadata := range doc.Metadata {
		for _, id := range metadata.IDs {
			entry.ids = append(entry.ids, strings.TrimSpace(id))
		}
	}

	a.mu.Lock()
	a.cache[path] = entry
	a.mu.Unlock()
	return entry, nil
}

var _ ports.PackageIdentityPort = (*NuspecAdapter)(nil)
