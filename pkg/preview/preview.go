// Package preview implements an in-memory preview-handle registry: opaque,
// revocable URLs bound to byte content, in the manner of object URLs.
// CreateHandle and ReleaseHandle must be paired 1:1 by the caller.
package preview

import (
	"sync"

	"github.com/google/uuid"
)

const scheme = "blob:mem/"

// Registry maps opaque handle URLs to byte content.
type Registry struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{blobs: make(map[string][]byte)}
}

// CreateHandle binds data to a fresh opaque URL.
func (r *Registry) CreateHandle(data []byte) string {
	url := scheme + uuid.NewString()
	r.mu.Lock()
	r.blobs[url] = data
	r.mu.Unlock()
	return url
}

// ReleaseHandle revokes a handle. Releasing an unknown or already-released
// handle is a no-op.
func (r *Registry) ReleaseHandle(url string) {
	r.mu.Lock()
	delete(r.blobs, url)
	r.mu.Unlock()
}

// Get resolves a handle to its content.
func (r *Registry) Get(url string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.blobs[url]
	return data, ok
}

// Len reports the number of live handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.blobs)
}
