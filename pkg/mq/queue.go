package mq

import (
	"context"
	"sync"
)

// requestQueue is a singly-linked, thread-safe FIFO of *Request. It is
// guarded by one mutex and one condition variable, following the classic
// "lock, loop on predicate, signal under lock" shape for a blocking
// producer/consumer queue.
//
// Invariants, all held under mu:
//
//	size == 0  <=>  head == nil  <=>  tail == nil
//	size > 0   =>   tail.next == nil
//
// size is authoritative; head/tail are derived bookkeeping.
type requestQueue struct {
	mu       sync.Mutex
	produced *sync.Cond

	head, tail *Request
	size       int
}

func newRequestQueue() *requestQueue {
	q := &requestQueue{}
	q.produced = sync.NewCond(&q.mu)
	return q
}

// push appends r to the tail and wakes exactly one blocked pop. push never
// fails.
func (q *requestQueue) push(r *Request) {
	q.mu.Lock()
	r.next = nil
	if q.tail == nil {
		q.head, q.tail = r, r
	} else {
		q.tail.next = r
		q.tail = r
	}
	q.size++
	q.produced.Signal()
	q.mu.Unlock()
}

// pop blocks until the queue is non-empty, then removes and returns the
// head. It additionally unblocks if ctx is canceled, in which case it
// returns (nil, ctx.Err()); passing context.Background() (or a nil ctx)
// makes pop block unconditionally, which is what every internal caller
// (the workers, Start/Stop) does.
func (q *requestQueue) pop(ctx context.Context) (*Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Wake this pop if ctx is canceled while we're waiting on the cond.
	if done := ctx.Done(); done != nil {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-done:
				q.mu.Lock()
				q.produced.Broadcast()
				q.mu.Unlock()
			case <-stop:
			}
		}()
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	for q.size == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q.produced.Wait()
	}

	r := q.head
	q.head = r.next
	if q.head == nil {
		q.tail = nil
	}
	q.size--
	r.next = nil
	return r, nil
}

// drain empties the queue and returns every remaining Request, mirroring
// queue_delete's "pop and release everything left" behavior. The caller is
// responsible for releasing the returned requests.
func (q *requestQueue) drain() []*Request {
	q.mu.Lock()
	defer q.mu.Unlock()

	var drained []*Request
	for r := q.head; r != nil; {
		next := r.next
		r.next = nil
		drained = append(drained, r)
		r = next
	}
	q.head, q.tail, q.size = nil, nil, 0
	return drained
}

// len reports the current queue size. It exists for tests and metrics; it
// is not part of the blocking contract.
func (q *requestQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size
}
