package mq

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// sentinelTopic is the reserved topic and body value used to wake a
// blocked Retrieve at shutdown. It is deliberately overloaded with any
// legitimate topic or message body of the same name; that ambiguity is a
// known, accepted tradeoff rather than a bug.
const sentinelTopic = "SHUTDOWN"

// Client is a message-queue client connected to a single HTTP/1.0-dialect
// broker. It owns two background goroutines (pusher and puller) and two
// bounded-wait FIFO queues connecting them to the public API.
//
// The zero value is not usable; construct with NewClient.
type Client struct {
	name, host, port string

	cfg cfg

	outgoing *requestQueue
	incoming *requestQueue

	shutdown atomic.Bool
	workers  errgroup.Group

	startOnce sync.Once
	stopOnce  sync.Once
	stopped   atomic.Bool
}

// NewClient creates a dormant Client identified by name, targeting the
// broker at host:port. Neither queue nor worker goroutine is started;
// call Start to begin processing.
func NewClient(name, host, port string, opts ...Opt) *Client {
	c := defaultCfg()
	for _, opt := range opts {
		opt(&c)
	}

	return &Client{
		name:     name,
		host:     host,
		port:     port,
		cfg:      c,
		outgoing: newRequestQueue(),
		incoming: newRequestQueue(),
	}
}

// Publish enqueues a PUT /topic/<topic> request carrying body.
func (cl *Client) Publish(topic, body string) {
	r := NewRequest(strp("PUT"), strp(fmt.Sprintf("/topic/%s", topic)), strp(body))
	cl.outgoing.push(r)
	cl.cfg.hooks.onPublish("PUT", *r.URI, nil)
}

// Subscribe enqueues a PUT /subscription/<name>/<topic> request.
func (cl *Client) Subscribe(topic string) {
	r := NewRequest(strp("PUT"), strp(fmt.Sprintf("/subscription/%s/%s", cl.name, topic)), nil)
	cl.outgoing.push(r)
	cl.cfg.hooks.onPublish("PUT", *r.URI, nil)
}

// Unsubscribe enqueues a DELETE /subscription/<name>/<topic> request.
func (cl *Client) Unsubscribe(topic string) {
	r := NewRequest(strp("DELETE"), strp(fmt.Sprintf("/subscription/%s/%s", cl.name, topic)), nil)
	cl.outgoing.push(r)
	cl.cfg.hooks.onPublish("DELETE", *r.URI, nil)
}

// Retrieve pops one Request from the incoming queue and returns its body.
// It reports (_, false) if the popped Request has no body, if the body is
// the reserved sentinel value, or if ctx is canceled first.
//
// ctx may be nil (equivalent to context.Background()), which reproduces
// the original's unconditionally-blocking retrieve.
func (cl *Client) Retrieve(ctx context.Context) (string, bool) {
	r, err := cl.incoming.pop(ctx)
	if err != nil {
		return "", false
	}
	if r.Body == nil {
		return "", false
	}

	body := *r.Body
	cl.cfg.hooks.onRetrieve(body)
	if body == sentinelTopic {
		return "", false
	}
	return body, true
}

// Start subscribes this client to the reserved shutdown topic so Stop has
// a way to wake a blocked Retrieve, then launches the pusher and puller
// goroutines. Start is idempotent; only the first call has effect.
func (cl *Client) Start() {
	cl.startOnce.Do(func() {
		cl.Subscribe(sentinelTopic)
		cl.workers.Go(cl.runPusher)
		cl.workers.Go(cl.runPuller)
	})
}

// Stop publishes the sentinel message, flips the shutdown flag, and waits
// for both workers to return. Stop is idempotent; only the first call
// blocks for real work, later calls return immediately. After Stop
// returns no worker goroutine is running.
func (cl *Client) Stop() {
	cl.stopOnce.Do(func() {
		cl.Publish(sentinelTopic, sentinelTopic)
		cl.shutdown.Store(true)
		cl.workers.Wait() //nolint:errcheck // workers never return non-nil
		cl.stopped.Store(true)
	})
}

// Shutdown reports whether Stop has been called. Workers poll this
// between loop iterations to terminate; an embedding application's
// foreground retrieval loop may poll it too.
func (cl *Client) Shutdown() bool {
	return cl.shutdown.Load()
}

// Close releases both queues. It must be called only after Stop has
// returned; calling it earlier returns ErrNotStopped instead of racing
// the still-running workers, making the original's "requires prior stop"
// comment a checked precondition.
func (cl *Client) Close() error {
	if !cl.stopped.Load() {
		return ErrNotStopped
	}
	cl.outgoing.drain()
	cl.incoming.drain()
	return nil
}
