package mq

import (
	"fmt"
	"io"
)

// Request is an HTTP/1.0-dialect message sent between client and broker.
//
// Method, URI, and Body are independently nullable, mirroring the tri-state
// string fields of the originating C structure: a field that was never
// supplied is nil, not empty. next is used only while the Request is linked
// into a requestQueue; it is never meaningful to callers.
type Request struct {
	Method *string
	URI    *string
	Body   *string

	next *Request
}

// NewRequest builds a Request from optional method, uri, and body strings.
// A nil argument leaves the corresponding field nil.
func NewRequest(method, uri, body *string) *Request {
	r := &Request{}
	if method != nil {
		m := *method
		r.Method = &m
	}
	if uri != nil {
		u := *uri
		r.URI = &u
	}
	if body != nil {
		b := *body
		r.Body = &b
	}
	return r
}

// strp returns a pointer to a copy of s, for call sites that only have a
// plain string in hand (the common case: literal methods, formatted URIs).
func strp(s string) *string {
	return &s
}

// WriteTo serializes the Request onto w as an HTTP/1.0-dialect request:
//
//	<method> <uri> HTTP/1.0\r\n
//	Content-Length: <len(body)>\r\n   (only if body is present)
//	\r\n
//	<body>                            (only if body is present)
//
// If Method or URI is nil, WriteTo writes nothing and returns (0, nil).
func (r *Request) WriteTo(w io.Writer) (int64, error) {
	if r.Method == nil || r.URI == nil {
		return 0, nil
	}

	var buf []byte
	buf = append(buf, *r.Method...)
	buf = append(buf, ' ')
	buf = append(buf, *r.URI...)
	buf = append(buf, " HTTP/1.0\r\n"...)

	if r.Body != nil {
		buf = append(buf, fmt.Sprintf("Content-Length: %d\r\n", len(*r.Body))...)
		buf = append(buf, "\r\n"...)
		buf = append(buf, *r.Body...)
	} else {
		buf = append(buf, "\r\n"...)
	}

	n, err := w.Write(buf)
	return int64(n), err
}
