package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// The middleware depends on the concrete redis-backed store, so the replay
// round trip is covered by integration tests against a real instance. These
// cover the recorder the middleware stores responses from.

func TestResponseRecorder_CapturesStatusAndBody(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := &responseRecorder{ResponseWriter: inner, body: &bytes.Buffer{}, statusCode: http.StatusOK}

	rec.WriteHeader(http.StatusCreated)
	rec.Write([]byte(`{"id":"123"}`))

	assert.Equal(t, http.StatusCreated, rec.statusCode)
	assert.Equal(t, `{"id":"123"}`, rec.body.String())

	// The client sees the same thing the recorder captured.
	assert.Equal(t, http.StatusCreated, inner.Code)
	assert.Equal(t, `{"id":"123"}`, inner.Body.String())
}

func TestResponseRecorder_DefaultsToOK(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := &responseRecorder{ResponseWriter: inner, body: &bytes.Buffer{}, statusCode: http.StatusOK}

	rec.Write([]byte("hello"))

	assert.Equal(t, http.StatusOK, rec.statusCode)
}

func TestResponseRecorder_LargeBodyNotRecorded(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := &responseRecorder{ResponseWriter: inner, body: &bytes.Buffer{}, statusCode: http.StatusOK}

	large := bytes.Repeat([]byte("x"), maxIdempotencyBodySize+1)
	rec.Write(large)

	// Oversized responses are delivered to the client but never stored.
	assert.True(t, rec.bodyTruncated)
	assert.Zero(t, rec.body.Len())
	assert.Equal(t, maxIdempotencyBodySize+1, inner.Body.Len())
}
