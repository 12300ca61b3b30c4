package adapters

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"nuget-tools/internal/ports"
	"nuget-tools/internal/types"
)

const (
	MsgLaunchFailure   = "failed to launch packaging executable"
	MsgOutputTruncated = "output truncated after an overlong line"

	defaultMaxLineBytes = 1024 * 1024
)

type ProcessRunnerAdapter struct {
	MaxLineBytes int
}

func NewProcessRunnerAdapter() ProcessRunnerAdapter {
	return ProcessRunnerAdapter{MaxLineBytes: defaultMaxLineBytes}
}

// Run starts executable and blocks until it exits. Each stream is read by
// its own goroutine into an unbounded queue, and a second goroutine per
// stream hands queued lines to the sink, so a slow sink never backs up the
// child's pipes. The context is only consulted before launch.
func (a ProcessRunnerAdapter) Run(ctx context.Context, executable string, workingDir string, args []string, sink ports.OutputSink) (types.ProcessOutcome, error) {
	if err := ctx.Err(); err != nil {
		return types.ProcessOutcome{}, err
	}
	assert.NotEmpty(ctx, executable, "packaging executable must be set")

	logger := log.With().
		Str("invocation", uuid.NewString()).
		Str("executable", executable).
		Logger()

	cmd := exec.Command(executable, args...)
	cmd.Dir = workingDir
	configureProcAttr(cmd)

	// Pipes exist before Start, so nothing the child writes can be missed.
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return types.ProcessOutcome{}, launchFailure(sink, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		_ = stdout.Close()
		return types.ProcessOutcome{}, launchFailure(sink, err)
	}

	logger.Debug().Strs("args", args).Str("dir", workingDir).Msg("launching packaging executable")
	if err := cmd.Start(); err != nil {
		logger.Debug().Err(err).Msg("launch failed")
		return types.ProcessOutcome{}, launchFailure(sink, err)
	}

	outLines := newLineQueue()
	errLines := newLineQueue()
	delivered := make(chan struct{}, 2)
	go func() {
		outLines.drain(sink.WriteLine)
		delivered <- struct{}{}
	}()
	go func() {
		errLines.drain(sink.WriteErrorLine)
		delivered <- struct{}{}
	}()

	maxLine := a.MaxLineBytes
	if maxLine <= 0 {
		maxLine = defaultMaxLineBytes
	}
	var readers errgroup.Group
	readers.Go(func() error { return scanLines(stdout, outLines, maxLine) })
	readers.Go(func() error { return scanLines(stderr, errLines, maxLine) })
	truncated := readers.Wait()
	if truncated != nil {
		logger.Warn().Err(truncated).Msg("output stream truncated")
	}

	// Wait closes the pipes, so it runs only after both readers hit EOF.
	waitErr := cmd.Wait()
	outLines.close()
	errLines.close()
	<-delivered
	<-delivered
	if truncated != nil {
		sink.WriteWarningLine(fmt.Sprintf("%s: %s", MsgOutputTruncated, truncated.Error()))
	}

	exitCode, err := exitCodeOf(waitErr)
	if err != nil {
		sink.WriteErrorLine(err.Error())
		return types.ProcessOutcome{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to wait for packaging executable").
			WithCause(err)
	}
	logger.Debug().Int("exit_code", exitCode).Msg("packaging executable exited")
	sink.WriteLine(fmt.Sprintf("ExitCode: '%d'", exitCode))
	return types.ProcessOutcome{ExitCode: int32(exitCode)}, nil
}

// IsLaunchFailure reports whether err means the executable never started.
func IsLaunchFailure(err error) bool {
	if errbuilder.CodeOf(err) != errbuilder.CodeUnavailable {
		return false
	}
	var builder *errbuilder.ErrBuilder
	return errors.As(err, &builder) && builder.Msg == MsgLaunchFailure
}

// launchFailure reports the error and its cause chain to the sink before
// wrapping it for the caller.
func launchFailure(sink ports.OutputSink, err error) error {
	sink.WriteErrorLine(fmt.Sprintf("%s: %s", MsgLaunchFailure, err.Error()))
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		sink.WriteErrorLine(fmt.Sprintf("  caused by %T: %s", cause, cause.Error()))
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg(MsgLaunchFailure).
		WithCause(err)
}

// scanLines queues every line of r. If a line exceeds maxLine the rest of
// the stream is discarded so the child can still finish writing.
func scanLines(r io.Reader, queue *lineQueue, maxLine int) error {
	initial := 64 * 1024
	if maxLine < initial {
		initial = maxLine
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initial), maxLine)
	for scanner.Scan() {
		queue.push(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		_, _ = io.Copy(io.Discard, r)
		return err
	}
	return nil
}

func exitCodeOf(waitErr error) (int, error) {
	if waitErr == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, waitErr
}

var _ ports.ProcessRunnerPort = ProcessRunnerAdapter{}
