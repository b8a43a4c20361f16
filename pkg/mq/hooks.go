package mq

import "time"

// Hook is implemented by types that want to observe client events. A
// caller registers interest in specific events by implementing the
// matching *Hook interface below and passing the value to WithHooks;
// dispatch picks out the interfaces a registered Hook satisfies via type
// assertion, so one value can implement several of ConnectHook,
// PublishHook, RetrieveHook, and DisconnectHook at once.
type Hook interface{}

// ConnectHook observes a dial attempt to the broker, successful or not.
type ConnectHook interface {
	OnConnect(addr string, elapsed time.Duration, err error)
}

// PublishHook observes a request (publish, subscribe, or unsubscribe)
// as it is enqueued on the outgoing queue, before it is sent to the
// broker; err is always nil at that point.
type PublishHook interface {
	OnPublish(method, uri string, err error)
}

// RetrieveHook observes a message body that Retrieve has popped from the
// incoming queue, before sentinel filtering.
type RetrieveHook interface {
	OnRetrieve(body string)
}

// DisconnectHook observes a connection closing, by either side.
type DisconnectHook interface {
	OnDisconnect(addr string)
}

type hooks []Hook

func (hs hooks) each(fn func(Hook)) {
	for _, h := range hs {
		fn(h)
	}
}

func (hs hooks) onConnect(addr string, elapsed time.Duration, err error) {
	hs.each(func(h Hook) {
		if h, ok := h.(ConnectHook); ok {
			h.OnConnect(addr, elapsed, err)
		}
	})
}

func (hs hooks) onPublish(method, uri string, err error) {
	hs.each(func(h Hook) {
		if h, ok := h.(PublishHook); ok {
			h.OnPublish(method, uri, err)
		}
	})
}

func (hs hooks) onRetrieve(body string) {
	hs.each(func(h Hook) {
		if h, ok := h.(RetrieveHook); ok {
			h.OnRetrieve(body)
		}
	})
}

func (hs hooks) onDisconnect(addr string) {
	hs.each(func(h Hook) {
		if h, ok := h.(DisconnectHook); ok {
			h.OnDisconnect(addr)
		}
	})
}
