package adapters

import (
	"fmt"
	"io"
	"sync"

	"nuget-tools/internal/ports"
)

// ConsoleSink prints tool output to out and errors and warnings, prefixed,
// to errOut. Empty lines are dropped.
type ConsoleSink struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
}

func NewConsoleSink(out io.Writer, errOut io.Writer) *ConsoleSink {
	return &ConsoleSink{out: out, errOut: errOut}
}

func (s *ConsoleSink) WriteLine(text string) {
	s.write(s.out, "", text)
}

func (s *ConsoleSink) WriteErrorLine(text string) {
	s.write(s.errOut, "Error: ", text)
}

func (s *ConsoleSink) WriteWarningLine(text string) {
	s.write(s.errOut, "Warning: ", text)
}

func (s *ConsoleSink) write(w io.Writer, prefix string, text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(w, prefix+text)
}

var _ ports.OutputSink = (*ConsoleSink)(nil)
