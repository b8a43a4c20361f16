package mq

import (
	"context"
	"net"
	"time"
)

// DialFn dials a fresh connection to the broker at host:port. The default
// wraps net.Dialer.DialContext, which already tries every address
// net.DefaultResolver returns for host, in order, before giving up, so
// there is no need to hand-roll a getaddrinfo-style candidate loop.
type DialFn func(ctx context.Context, host, port string) (net.Conn, error)

type cfg struct {
	logger Logger
	hooks  hooks

	dialFn DialFn

	dialTimeout   time.Duration
	socketTimeout time.Duration

	// reconnectBackoff, when non-zero, is the base of a capped
	// exponential backoff applied between failed dial attempts in both
	// workers. The zero value means no backoff: a worker redials
	// immediately on failure.
	reconnectBackoff time.Duration
	maxBackoff       time.Duration
}

func defaultCfg() cfg {
	// dialFn is left nil here rather than closing over this cfg value: a
	// closure captured now would keep reading this local's dialTimeout
	// even after NewClient copies it and WithDialTimeout overrides it on
	// the copy. connect() falls back to dialDefault, reading the live
	// cfg's dialTimeout at call time instead.
	return cfg{
		logger:        nopLogger{},
		dialTimeout:   10 * time.Second,
		socketTimeout: 30 * time.Second,
		maxBackoff:    5 * time.Second,
	}
}

func dialDefault(ctx context.Context, host, port string, timeout time.Duration) (net.Conn, error) {
	d := net.Dialer{Timeout: timeout}
	return d.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
}

// Opt configures a Client at construction time, following the common
// functional-option convention.
type Opt func(*cfg)

// WithLogger sets the Logger every worker and the public API log through.
func WithLogger(l Logger) Opt {
	return func(c *cfg) { c.logger = l }
}

// WithHooks registers observers for connect/publish/retrieve/disconnect
// events.
func WithHooks(hs ...Hook) Opt {
	return func(c *cfg) { c.hooks = append(c.hooks, hs...) }
}

// WithDialFn overrides how the client dials the broker. Tests use this to
// dial the in-process echo broker over a loopback TCP connection.
func WithDialFn(fn DialFn) Opt {
	return func(c *cfg) { c.dialFn = fn }
}

// WithDialTimeout bounds how long a single dial attempt may take.
func WithDialTimeout(d time.Duration) Opt {
	return func(c *cfg) { c.dialTimeout = d }
}

// WithSocketTimeout bounds how long a worker will wait on a read or write
// to an already-established connection, so a wedged broker cannot hang a
// worker (and therefore Stop) forever.
func WithSocketTimeout(d time.Duration) Opt {
	return func(c *cfg) { c.socketTimeout = d }
}

// WithReconnectBackoff opts into capped exponential backoff between failed
// dial attempts in the pusher and puller, in place of redialing
// immediately. base is the initial delay; it doubles on each consecutive
// failure up to max.
func WithReconnectBackoff(base, max time.Duration) Opt {
	return func(c *cfg) {
		c.reconnectBackoff = base
		c.maxBackoff = max
	}
}
