package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuget-tools/tests/testutil"
)

func TestProcessRunnerStreamsAndReturnsExitCode(t *testing.T) {
	dir := t.TempDir()
	exe := testutil.WriteScript(t, dir, "nuget", "echo line1\necho oops 1>&2\nexit 3\n")

	sink := &testutil.RecordingSink{}
	outcome, err := NewProcessRunnerAdapter().Run(t.Context(), exe, dir, []string{"pack"}, sink)
	require.NoError(t, err)
	assert.Equal(t, int32(3), outcome.ExitCode)
	assert.False(t, outcome.Succeeded())

	lines, errs, warnings := sink.Snapshot()
	assert.Equal(t, []string{"line1", "ExitCode: '3'"}, lines)
	assert.Equal(t, []string{"oops"}, errs)
	assert.Empty(t, warnings)
}

func TestProcessRunnerForwardsEmptyLines(t *testing.T) {
	dir := t.TempDir()
	exe := testutil.WriteScript(t, dir, "nuget", "echo\necho a\necho\n")

	sink := &testutil.RecordingSink{}
	outcome, err := NewProcessRunnerAdapter().Run(t.Context(), exe, dir, nil, sink)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	lines, _, _ := sink.Snapshot()
	assert.Equal(t, []string{"", "a", "", "ExitCode: '0'"}, lines)
}

func TestProcessRunnerPassesArguments(t *testing.T) {
	dir := t.TempDir()
	exe := testutil.WriteScript(t, dir, "nuget", "for arg in \"$@\"; do echo \"[$arg]\"; done\n")

	sink := &testutil.RecordingSink{}
	_, err := NewProcessRunnerAdapter().Run(t.Context(), exe, dir, []string{"pack", "My Lib.csproj", "-Verbosity", "quiet"}, sink)
	require.NoError(t, err)
	lines, _, _ := sink.Snapshot()
	assert.Equal(t, []string{"[pack]", "[My Lib.csproj]", "[-Verbosity]", "[quiet]", "ExitCode: '0'"}, lines)
}

func TestProcessRunnerUsesWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	workDir := t.TempDir()
	exe := testutil.WriteScript(t, dir, "nuget", "pwd\n")

	sink := &testutil.RecordingSink{}
	_, err := NewProcessRunnerAdapter().Run(t.Context(), exe, workDir, nil, sink)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(workDir)
	require.NoError(t, err)
	lines, _, _ := sink.Snapshot()
	require.Len(t, lines, 2)
	got, err := filepath.EvalSymlinks(lines[0])
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestProcessRunnerPreservesPerStreamOrder(t *testing.T) {
	dir := t.TempDir()
	exe := testutil.WriteScript(t, dir, "nuget", `i=0
while [ $i -lt 300 ]; do
  echo "out $i"
  echo "err $i" 1>&2
  i=$((i+1))
done
`)

	sink := &testutil.RecordingSink{}
	_, err := NewProcessRunnerAdapter().Run(t.Context(), exe, dir, nil, sink)
	require.NoError(t, err)

	lines, errs, _ := sink.Snapshot()
	require.Len(t, lines, 301)
	require.Len(t, errs, 300)
	for i := 0; i < 300; i++ {
		assert.Equal(t, fmt.Sprintf("out %d", i), lines[i])
		assert.Equal(t, fmt.Sprintf("err %d", i), errs[i])
	}
	assert.Equal(t, "ExitCode: '0'", lines[300])
}

// blockingSink holds the first stdout line until the marker file shows up,
// which only happens once the child has written all of its output.
type blockingSink struct {
	testutil.RecordingSink
	marker     string
	once       sync.Once
	markerSeen bool
}

func (s *blockingSink) WriteLine(text string) {
	s.once.Do(func() {
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			if _, err := os.Stat(s.marker); err == nil {
				s.markerSeen = true
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	})
	s.RecordingSink.WriteLine(text)
}

func TestProcessRunnerSlowSinkDoesNotStallChild(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "done")
	payload := strings.Repeat("x", 100)
	exe := testutil.WriteScript(t, dir, "nuget", fmt.Sprintf(`i=0
while [ $i -lt 4000 ]; do
  echo "%s"
  i=$((i+1))
done
: > "%s"
`, payload, marker))

	sink := &blockingSink{marker: marker}
	outcome, err := NewProcessRunnerAdapter().Run(t.Context(), exe, dir, nil, sink)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	assert.True(t, sink.markerSeen, "child was blocked by the sink")

	lines, _, _ := sink.Snapshot()
	assert.Len(t, lines, 4001)
}

func TestProcessRunnerDiscardsOverlongLineWithoutBlocking(t *testing.T) {
	dir := t.TempDir()
	exe := testutil.WriteScript(t, dir, "nuget", `printf 'short\n'
i=0
while [ $i -lt 200 ]; do printf 'yyyyyyyyyy'; i=$((i+1)); done
printf '\n'
echo oops 1>&2
exit 0
`)

	sink := &testutil.RecordingSink{}
	runner := ProcessRunnerAdapter{MaxLineBytes: 512}
	outcome, err := runner.Run(t.Context(), exe, dir, nil, sink)
	require.NoError(t, err)
	assert.True(t, outcome.Succeeded())
	lines, errs, warnings := sink.Snapshot()
	assert.Equal(t, []string{"short", "ExitCode: '0'"}, lines)
	assert.Equal(t, []string{"oops"}, errs)
	require.Len(t, warnings, 1)
	assert.True(t, strings.HasPrefix(warnings[0], MsgOutputTruncated), warnings[0])
}

func TestProcessRunnerLaunchFailure(t *testing.T) {
	testutil.RequirePOSIX(t)
	dir := t.TempDir()
	notExecutable := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(notExecutable, []byte("#!/bin/sh\necho hi\n"), 0o644))

	tests := []struct {
		name       string
		executable string
		workDir    string
	}{
		{name: "missing executable", executable: filepath.Join(dir, "does-not-exist"), workDir: dir},
		{name: "not executable", executable: notExecutable, workDir: dir},
		{name: "missing working directory", executable: "/bin/sh", workDir: filepath.Join(dir, "nope")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &testutil.RecordingSink{}
			outcome, err := NewProcessRunnerAdapter().Run(t.Context(), tt.executable, tt.workDir, nil, sink)
			require.Error(t, err)
			assert.True(t, IsLaunchFailure(err))
			assert.Equal(t, errbuilder.CodeUnavailable, errbuilder.CodeOf(err))
			assert.Equal(t, int32(0), outcome.ExitCode)

			lines, errs, _ := sink.Snapshot()
			assert.Empty(t, lines)
			require.NotEmpty(t, errs)
			assert.True(t, strings.HasPrefix(errs[0], MsgLaunchFailure))
		})
	}
}

func TestProcessRunnerCancelledBeforeLaunch(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	exe := testutil.WriteScript(t, dir, "nuget", fmt.Sprintf(": > %q\n", marker))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	sink := &testutil.RecordingSink{}
	_, err := NewProcessRunnerAdapter().Run(ctx, exe, dir, nil, sink)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsLaunchFailure(err))

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr))
	lines, errs, _ := sink.Snapshot()
	assert.Empty(t, lines)
	assert.Empty(t, errs)
}
