package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAndGet(t *testing.T) {
	r := NewRegistry()

	data := []byte("pdf bytes")
	url := r.CreateHandle(data)
	assert.NotEmpty(t, url)
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get(url)
	assert.True(t, ok)
	assert.Equal(t, data, got)
}

func TestHandlesAreUnique(t *testing.T) {
	r := NewRegistry()

	a := r.CreateHandle([]byte("a"))
	b := r.CreateHandle([]byte("a"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, r.Len())
}

func TestRelease(t *testing.T) {
	r := NewRegistry()

	url := r.CreateHandle([]byte("a"))
	r.ReleaseHandle(url)
	assert.Equal(t, 0, r.Len())

	_, ok := r.Get(url)
	assert.False(t, ok)

	// Releasing again is a no-op.
	r.ReleaseHandle(url)
	assert.Equal(t, 0, r.Len())
}
