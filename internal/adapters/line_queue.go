package adapters

import "sync"

// lineQueue is an unbounded FIFO between a stream reader and the sink.
// push never blocks on the consumer.
type lineQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	lines  []string
	closed bool
}

func newLineQueue() *lineQueue {
	q := &lineQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *lineQueue) push(line string) {
	q.mu.Lock()
	q.lines = append(q.lines, line)
	q.mu.Unlock()
	q.cond.Signal()
}

func (q *lineQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// drain calls deliver for every queued line, in order, until the queue is
// closed and empty.
func (q *lineQueue) drain(deliver func(string)) {
	for {
		q.mu.Lock()
		for len(q.lines) == 0 && !q.closed {
			q.cond.Wait()
		}
		if len(q.lines) == 0 {
			q.mu.Unlock()
			return
		}
		batch := q.lines
		q.lines = nil
		q.mu.Unlock()
		for _, line := range batch {
			deliver(line)
		}
	}
}
