package signclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignSuccess(t *testing.T) {
	signed := []byte("%PDF-1.4 signed bytes")
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "test.pdf", header.Filename)
		w.Write(signed)
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL})
	res := c.Sign(context.Background(), "test.pdf", []byte("original"))

	assert.True(t, res.Signed)
	assert.Equal(t, signed, res.Bytes)
	// No hidden retries: one call, one request.
	assert.Equal(t, int32(1), calls.Load())
}

func TestSignServerRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error":"file exceeds the 10 MiB limit"}`))
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL})
	res := c.Sign(context.Background(), "big.pdf", []byte("x"))

	assert.False(t, res.Signed)
	assert.Equal(t, CauseServerRejected, res.Cause)
	assert.Equal(t, "file exceeds the 10 MiB limit", res.Message)
}

func TestSignServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(Config{Endpoint: srv.URL})
	res := c.Sign(context.Background(), "test.pdf", []byte("x"))

	assert.False(t, res.Signed)
	assert.Equal(t, CauseServerError, res.Cause)
	assert.Contains(t, res.Message, "500")
}

func TestSignNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(Config{Endpoint: srv.URL})
	res := c.Sign(context.Background(), "test.pdf", []byte("x"))

	assert.False(t, res.Signed)
	assert.Equal(t, CauseNetwork, res.Cause)
}

func TestSignTimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	c := New(Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond})
	res := c.Sign(context.Background(), "test.pdf", []byte("x"))

	assert.False(t, res.Signed)
	assert.Equal(t, CauseNetwork, res.Cause)
}
