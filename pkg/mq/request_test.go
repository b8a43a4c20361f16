package mq

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// strPtrComparer treats two *string fields as equal when both are nil or
// both point at equal values, rather than comparing pointer identity.
var strPtrComparer = cmp.Comparer(func(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
})

func TestRequestWriteTo_WithBody(t *testing.T) {
	r := NewRequest(strp("PUT"), strp("/topic/HOT"), strp("SOME LIKE IT"))

	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.EqualValues(t, buf.Len(), n)
	assert.Equal(t, "PUT /topic/HOT HTTP/1.0\r\nContent-Length: 12\r\n\r\nSOME LIKE IT", buf.String())
}

func TestRequestWriteTo_WithoutBody(t *testing.T) {
	r := NewRequest(strp("DELETE"), strp("/subscription/LIVE/FOREVER"), nil)

	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "DELETE /subscription/LIVE/FOREVER HTTP/1.0\r\n\r\n", buf.String())
}

func TestRequestWriteTo_MissingMethodOrURI(t *testing.T) {
	cases := []*Request{
		NewRequest(nil, strp("/topic/HOT"), strp("body")),
		NewRequest(strp("PUT"), nil, strp("body")),
		NewRequest(nil, nil, nil),
	}

	for _, r := range cases {
		var buf bytes.Buffer
		n, err := r.WriteTo(&buf)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, buf.String())
	}
}

func TestNewRequest_CopiesFields(t *testing.T) {
	method, uri, body := "GET", "/queue/LIVE", "FOREVER"
	r := NewRequest(&method, &uri, &body)

	require.NotNil(t, r.Method)
	require.NotNil(t, r.URI)
	require.NotNil(t, r.Body)
	assert.Equal(t, method, *r.Method)
	assert.Equal(t, uri, *r.URI)
	assert.Equal(t, body, *r.Body)

	// Mutating the caller's copies must not affect the Request: its
	// fields are independently-owned copies, not shared pointers.
	method, uri, body = "x", "y", "z"
	assert.Equal(t, "GET", *r.Method)
	assert.Equal(t, "/queue/LIVE", *r.URI)
	assert.Equal(t, "FOREVER", *r.Body)
}

// TestNewRequest_DeepEqual compares two independently constructed
// Requests field-by-field, including the unexported queue link, using
// cmp.Diff rather than a run of individual assertions.
func TestNewRequest_DeepEqual(t *testing.T) {
	method, uri, body := "PUT", "/topic/HOT", "payload"
	got := NewRequest(&method, &uri, &body)
	want := &Request{Method: &method, URI: &uri, Body: &body}

	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Request{}), strPtrComparer); diff != "" {
		t.Errorf("NewRequest mismatch (-want +got):\n%s", diff)
	}
}
