package mq

import (
	"context"
	"net"
	"time"

	"github.com/pkg/errors"
)

// connect dials the broker, logging and hook-notifying the outcome. It
// sets no deadline on the connection; pushOne and pullOne each set a
// single deadline of the configured socket timeout covering their whole
// exchange on it.
func (cl *Client) connect(ctx context.Context) (net.Conn, error) {
	dialFn := cl.cfg.dialFn
	if dialFn == nil {
		dialFn = func(ctx context.Context, host, port string) (net.Conn, error) {
			return dialDefault(ctx, host, port, cl.cfg.dialTimeout)
		}
	}

	addr := net.JoinHostPort(cl.host, cl.port)
	start := time.Now()
	conn, err := dialFn(ctx, cl.host, cl.port)
	elapsed := time.Since(start)

	cl.cfg.hooks.onConnect(addr, elapsed, err)
	if err != nil {
		cl.cfg.logger.Log(LogLevelWarn, "unable to connect to broker", "addr", addr, "err", err)
		return nil, errors.Wrapf(err, "mq: dial %s", addr)
	}
	cl.cfg.logger.Log(LogLevelDebug, "connected to broker", "addr", addr)
	return conn, nil
}

// backoff implements the capped exponential delay described by
// WithReconnectBackoff. A zero-value backoff never sleeps, so a client
// built without that option redials immediately on every failure.
type backoff struct {
	base, max time.Duration
	attempt   int
}

func (b *backoff) sleep(ctx context.Context) {
	if b.base <= 0 {
		return
	}
	d := b.base << uint(b.attempt)
	if d <= 0 || d > b.max {
		d = b.max
	}
	b.attempt++

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func (b *backoff) reset() {
	b.attempt = 0
}
