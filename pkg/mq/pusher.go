package mq

import (
	"bufio"
	"context"
	"net"
	"time"
)

// dialUntilShutdown retries connect until it succeeds or Shutdown becomes
// true, sleeping bo between attempts (a no-op unless WithReconnectBackoff
// was configured; without it the worker redials immediately on every
// failure).
// It returns an error only when shutdown was observed first.
func (cl *Client) dialUntilShutdown(ctx context.Context, bo *backoff) (net.Conn, error) {
	for !cl.Shutdown() {
		conn, err := cl.connect(ctx)
		if err == nil {
			bo.reset()
			return conn, nil
		}
		bo.sleep(ctx)
	}
	return nil, ErrClientDead
}

// runPusher drains outgoing and sends each Request to the broker over a
// fresh connection, discarding the response beyond confirming bytes
// arrived. It pops a Request before dialing, deliberately: dialing first
// risks the broker reaping an idle connection while the pop then blocks
// on an empty queue, so a connection is only opened once a Request is
// already in hand to send over it.
func (cl *Client) runPusher() error {
	ctx := context.Background()
	bo := &backoff{base: cl.cfg.reconnectBackoff, max: cl.cfg.maxBackoff}

	for !cl.Shutdown() {
		req, err := cl.outgoing.pop(ctx)
		if err != nil {
			continue
		}

		conn, err := cl.dialUntilShutdown(ctx, bo)
		if err != nil {
			// Shutdown arrived before a dial succeeded. The request in
			// hand is typically Stop's own sentinel, which wakes a
			// blocked Retrieve only if it reaches the broker, so one more
			// dial is attempted; if that fails too the request is dropped.
			if conn, err = cl.connect(ctx); err != nil {
				continue
			}
		}

		cl.pushOne(conn, req)
	}
	return nil
}

func (cl *Client) pushOne(conn net.Conn, req *Request) {
	addr := conn.RemoteAddr().String()
	defer func() {
		conn.Close()
		cl.cfg.hooks.onDisconnect(addr)
	}()

	if cl.cfg.socketTimeout > 0 {
		conn.SetDeadline(time.Now().Add(cl.cfg.socketTimeout))
	}

	if _, err := req.WriteTo(conn); err != nil {
		cl.cfg.logger.Log(LogLevelWarn, "pusher: write failed", "addr", addr, "err", err)
		return
	}

	// Read and discard exactly one response line; the pusher never
	// parses the response beyond confirming bytes arrived.
	r := bufio.NewReader(conn)
	if _, err := r.ReadString('\n'); err != nil {
		cl.cfg.logger.Log(LogLevelWarn, "pusher: read failed", "addr", addr, "err", err)
		return
	}
}
