package bridge

import "sync"

// frameQueue is an unbounded FIFO of inbound frames.
//
// Enqueue never blocks and never drops, so frames arriving faster than the
// session can process them accumulate and drain in arrival order. Close
// discards anything still queued: once a session terminates, queued events
// must not be delivered.
type frameQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	frames []Frame
	closed bool
}

func newFrameQueue() *frameQueue {
	q := &frameQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// enqueue appends a frame. Frames enqueued after close are dropped.
func (q *frameQueue) enqueue(f Frame) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.frames = append(q.frames, f)
	q.cond.Signal()
}

// dequeue blocks until a frame is available or the queue is closed. It
// reports ok=false once closed, without draining leftover frames.
func (q *frameQueue) dequeue() (Frame, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for !q.closed && len(q.frames) == 0 {
		q.cond.Wait()
	}
	if q.closed {
		return Frame{}, false
	}
	f := q.frames[0]
	q.frames = q.frames[1:]
	return f, true
}

// close wakes any blocked dequeue and discards queued frames.
func (q *frameQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.frames = nil
	q.cond.Broadcast()
}
