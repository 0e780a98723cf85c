package background

import "context"

// Queue is a dispatcher for owners that run their own loop: fetch goroutines
// Post completions and the owner runs them with Drain or Next.
type Queue struct {
	ch chan func()
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{ch: make(chan func(), 16)}
}

// Post enqueues f. It blocks only while the buffer is full.
func (q *Queue) Post(f func()) {
	q.ch <- f
}

// Drain runs every queued function without waiting and returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case f := <-q.ch:
			f()
			n++
		default:
			return n
		}
	}
}

// Next waits for one queued function and runs it.
func (q *Queue) Next(ctx context.Context) error {
	select {
	case f := <-q.ch:
		f()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
