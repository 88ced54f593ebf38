package asynclogger

import "sync"

// WorkerState is the lifecycle of a Logger's worker goroutine.
type WorkerState int32

const (
	// StateRunning: waiting for or processing lines, no shutdown requested.
	StateRunning WorkerState = iota
	// StateDraining: shutdown requested, lines still pending or in flight.
	StateDraining
	// StateTerminated: shutdown requested and everything written. Terminal.
	StateTerminated
)

func (s WorkerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// queue is the unbounded FIFO between producers and the worker. Every field
// is guarded by mu. work is signalled when a line arrives or shutdown is
// requested; drained is broadcast when nothing is pending or in flight.
type queue struct {
	mu       sync.Mutex
	work     *sync.Cond
	drained  *sync.Cond
	pending  []string
	head     int
	inFlight bool
	shutdown bool
	finished bool
	accepted uint64
}

func newQueue() *queue {
	q := &queue{pending: make([]string, 0, 64)}
	q.work = sync.NewCond(&q.mu)
	q.drained = sync.NewCond(&q.mu)
	return q
}

// push appends line. It returns false once shutdown has been requested.
func (q *queue) push(line string) bool {
	q.mu.Lock()
	if q.shutdown {
		q.mu.Unlock()
		return false
	}
	q.pending = append(q.pending, line)
	q.accepted++
	q.mu.Unlock()

	q.work.Signal()
	return true
}

// pop blocks until a line is available and hands it to the caller, marking
// it in flight. It returns false when shutdown was requested and nothing is
// left; the queue is finished from then on.
func (q *queue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.lenLocked() == 0 && !q.shutdown {
		q.work.Wait()
	}

	if q.lenLocked() == 0 {
		q.finished = true
		q.drained.Broadcast()
		return "", false
	}

	line := q.pending[q.head]
	q.pending[q.head] = ""
	q.head++
	if q.head == len(q.pending) {
		q.pending = q.pending[:0]
		q.head = 0
	} else if q.head >= 1024 && q.head*2 >= len(q.pending) {
		n := copy(q.pending, q.pending[q.head:])
		q.pending = q.pending[:n]
		q.head = 0
	}
	q.inFlight = true
	return line, true
}

// done marks the line returned by the last pop as written.
func (q *queue) done() {
	q.mu.Lock()
	q.inFlight = false
	empty := q.lenLocked() == 0
	q.mu.Unlock()

	if empty {
		q.drained.Broadcast()
	}
}

// waitDrained blocks until nothing is pending or in flight.
func (q *queue) waitDrained() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for !q.finished && (q.lenLocked() > 0 || q.inFlight) {
		q.drained.Wait()
	}
}

// requestShutdown stops admission and wakes the worker. It reports whether
// this call was the one that flipped the flag.
func (q *queue) requestShutdown() bool {
	q.mu.Lock()
	if q.shutdown {
		q.mu.Unlock()
		return false
	}
	q.shutdown = true
	q.mu.Unlock()

	q.work.Broadcast()
	return true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lenLocked()
}

// acceptedCount is the number of lines push has admitted.
func (q *queue) acceptedCount() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.accepted
}

func (q *queue) isEmpty() bool {
	return q.len() == 0
}

func (q *queue) state() WorkerState {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch {
	case q.finished:
		return StateTerminated
	case q.shutdown:
		return StateDraining
	default:
		return StateRunning
	}
}

func (q *queue) lenLocked() int {
	return len(q.pending) - q.head
}
