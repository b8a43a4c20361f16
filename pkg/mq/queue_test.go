package mq

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestQueue_EmptyOnCreate(t *testing.T) {
	q := newRequestQueue()
	assert.Nil(t, q.head)
	assert.Nil(t, q.tail)
	assert.Zero(t, q.len())
}

func TestRequestQueue_PushIsFIFO(t *testing.T) {
	q := newRequestQueue()
	var pushed []*Request
	for i := 0; i < 5; i++ {
		r := NewRequest(strp("m"), strp("u"), nil)
		pushed = append(pushed, r)
		q.push(r)
		assert.Equal(t, pushed[0], q.head)
		assert.Equal(t, r, q.tail)
		assert.Equal(t, i+1, q.len())
	}

	for _, want := range pushed {
		got, err := q.pop(context.Background())
		require.NoError(t, err)
		assert.Same(t, want, got)
	}
	assert.Zero(t, q.len())
}

func TestRequestQueue_PopBlocksUntilPush(t *testing.T) {
	q := newRequestQueue()
	done := make(chan *Request, 1)

	go func() {
		r, err := q.pop(context.Background())
		require.NoError(t, err)
		done <- r
	}()

	select {
	case <-done:
		t.Fatal("pop returned before any push")
	case <-time.After(50 * time.Millisecond):
	}

	want := NewRequest(strp("m"), strp("u"), nil)
	q.push(want)

	select {
	case got := <-done:
		assert.Same(t, want, got)
	case <-time.After(time.Second):
		t.Fatal("pop did not unblock after push")
	}
}

func TestRequestQueue_PopCanceledByContext(t *testing.T) {
	q := newRequestQueue()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := q.pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRequestQueue_Drain(t *testing.T) {
	q := newRequestQueue()
	const n = 10
	for i := 0; i < n; i++ {
		q.push(NewRequest(strp("m"), strp("u"), nil))
	}

	drained := q.drain()
	assert.Len(t, drained, n)
	assert.Zero(t, q.len())
	assert.Nil(t, q.head)
	assert.Nil(t, q.tail)
}

// TestRequestQueue_Concurrent races several producers and consumers on
// one queue; every item is consumed exactly once and no consumer ever
// receives a nil Request.
func TestRequestQueue_Concurrent(t *testing.T) {
	const (
		producers = 4
		consumers = 2
		perProd   = 256
		total     = producers * perProd
	)

	q := newRequestQueue()
	var wg sync.WaitGroup

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProd; i++ {
				q.push(NewRequest(strp("1"), strp("2"), strp("3")))
			}
		}()
	}

	// tokens caps the total number of pops across all consumers at
	// exactly `total`, so no consumer is left blocked in pop() on an
	// empty, fully-drained queue once every produced item is accounted
	// for.
	tokens := make(chan struct{}, total)
	for i := 0; i < total; i++ {
		tokens <- struct{}{}
	}

	var mu sync.Mutex
	results := make([]*Request, 0, total)
	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-tokens:
				default:
					return
				}

				r, err := q.pop(context.Background())
				require.NoError(t, err)
				require.NotNil(t, r)

				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Len(t, results, total)
	for _, r := range results {
		assert.Equal(t, "1", *r.Method)
		assert.Equal(t, "2", *r.URI)
		assert.Equal(t, "3", *r.Body)
	}
}
