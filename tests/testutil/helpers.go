// Package testutil provides shared test helpers: a recording sink and a
// scriptable fake nuget executable.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// RecordingSink captures every line written to it, per channel.
type RecordingSink struct {
	mu       sync.Mutex
	Lines    []string
	Errors   []string
	Warnings []string
}

func (s *RecordingSink) WriteLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Lines = append(s.Lines, text)
}

func (s *RecordingSink) WriteErrorLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Errors = append(s.Errors, text)
}

func (s *RecordingSink) WriteWarningLine(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Warnings = append(s.Warnings, text)
}

// Snapshot returns copies of the captured lines.
func (s *RecordingSink) Snapshot() (lines []string, errs []string, warnings []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Lines...),
		append([]string(nil), s.Errors...),
		append([]string(nil), s.Warnings...)
}

// WriteScript writes an executable POSIX shell script into dir and returns
// its path. Tests that need it are skipped on Windows.
func WriteScript(t *testing.T, dir string, name string, body string) string {
	t.Helper()
	RequirePOSIX(t)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

// RequirePOSIX skips tests that rely on POSIX shells and file modes.
func RequirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

// FakeNuGetScript emulates the pieces of the packaging executable the tests
// depend on: pack writes the packages named in FAKE_PACKAGES into the
// -OutputDirectory, and the script exits with FAKE_EXIT (default 0). Every
// invocation appends its arguments to FAKE_LOG when set.
const FakeNuGetScript = `out=""
prev=""
for arg in "$@"; do
  if [ "$prev" = "-OutputDirectory" ]; then out="$arg"; fi
  prev="$arg"
done
if [ -n "$FAKE_LOG" ]; then echo "$@" >> "$FAKE_LOG"; fi
echo "fake nuget $1"
if [ "$1" = "pack" ] && [ -n "$out" ]; then
  mkdir -p "$out"
  for pkg in $FAKE_PACKAGES; do
    : > "$out/$pkg"
    echo "Successfully created package '$out/$pkg'."
  done
fi
exit "${FAKE_EXIT:-0}"
`
