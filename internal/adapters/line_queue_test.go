package adapters

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineQueueDeliversInOrderAfterClose(t *testing.T) {
	q := newLineQueue()
	done := make(chan []string)
	go func() {
		var got []string
		q.drain(func(line string) { got = append(got, line) })
		done <- got
	}()

	var want []string
	for i := 0; i < 1000; i++ {
		line := fmt.Sprintf("line %d", i)
		want = append(want, line)
		q.push(line)
	}
	q.close()
	assert.Equal(t, want, <-done)
}

func TestLineQueueDrainReturnsOnEmptyClose(t *testing.T) {
	q := newLineQueue()
	q.close()
	calls := 0
	q.drain(func(string) { calls++ })
	assert.Zero(t, calls)
}
