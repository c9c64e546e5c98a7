// Package queue implements a joinable FIFO task queue: the Go analogue of
// Python's queue.Queue.join(), used as the sole recursion primitive for the
// scan engine. Recursion is expressed as enqueueing children rather than as
// a call stack, which bounds memory and parallelizes for free.
package queue

import "sync"

// Queue is a multi-producer, multi-consumer FIFO supporting explicit
// per-item acknowledgement. Join blocks until every Put has had a matching
// TaskDone call, even if those Puts happen after Join was called (a worker
// enqueueing a child task mid-run is the normal case, not a race).
type Queue struct {
	mu        sync.Mutex
	notEmpty  sync.Cond
	allDone   sync.Cond
	items     []any
	unfinished int
	closed    bool
}

// New returns an empty, open queue.
func New() *Queue {
	q := &Queue{}
	q.notEmpty.L = &q.mu
	q.allDone.L = &q.mu
	return q
}

// Put enqueues an item and increments the outstanding-task counter. Put on
// a closed queue is a no-op; the driver closes the queue only after Join
// has returned, by which point no more Puts are expected.
func (q *Queue) Put(item any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, item)
	q.unfinished++
	q.notEmpty.Signal()
}

// Get blocks until an item is available or the queue is closed, returning
// ok=false in the latter case.
func (q *Queue) Get() (item any, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	item = q.items[0]
	q.items = q.items[1:]
	return item, true
}

// TaskDone records that one previously Put item has finished processing.
// It must be called exactly once per Put, including for items whose
// processing failed.
func (q *Queue) TaskDone() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.unfinished--
	if q.unfinished < 0 {
		panic("queue: TaskDone called more times than Put")
	}
	if q.unfinished == 0 {
		q.allDone.Broadcast()
	}
}

// Join blocks until the number of TaskDone calls equals the number of Put
// calls, i.e. until the queue and every task it produced (directly or via
// workers enqueueing children) has drained.
func (q *Queue) Join() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.unfinished > 0 {
		q.allDone.Wait()
	}
}

// Close unblocks every Get waiting for an item, making them return
// ok=false. Call this only after Join has returned, to shut workers down.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.notEmpty.Broadcast()
}
