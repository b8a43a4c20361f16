package mq

import "github.com/pkg/errors"

// Sentinel errors returned by the public surface. Network and protocol
// errors encountered inside the pusher/puller goroutines are never
// surfaced this way — they are logged and retried — so the only one that
// reaches a caller is ErrNotStopped, from Close.
var (
	// ErrClientDead is returned internally by dialUntilShutdown when
	// shutdown is observed before a dial succeeds; no public method
	// returns it.
	ErrClientDead = errors.New("mq: client has been stopped")

	// ErrNotStopped is raised by Close if Stop has not yet returned,
	// making "Close requires a prior Stop" a checked precondition
	// instead of a silent race with the still-running workers.
	ErrNotStopped = errors.New("mq: Close called before Stop completed")

	// errMalformedResponse marks a 200 response whose headers carry no
	// Content-Length. It never leaves the puller: it is logged and the
	// request is discarded.
	errMalformedResponse = errors.New("mq: malformed broker response")
)
