// Package history keeps the local list of signed documents. Each entry owns
// its preview handle; removal releases it exactly once.
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Releaser revokes preview handles owned by removed entries.
type Releaser interface {
	ReleaseHandle(url string)
}

// Entry is one completed signing result.
type Entry struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	SignedAt time.Time `json:"signed_at"`
	Handle   string    `json:"handle"`
}

// Store is an in-memory history list, newest first.
type Store struct {
	mu       sync.Mutex
	releaser Releaser
	entries  []Entry
}

// NewStore creates an empty Store.
func NewStore(releaser Releaser) *Store {
	return &Store{releaser: releaser}
}

// Record implements the wizard's history sink.
func (s *Store) Record(name string, signedAt time.Time, handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]Entry{{
		ID:       uuid.New(),
		Name:     name,
		SignedAt: signedAt,
		Handle:   handle,
	}}, s.entries...)
}

// Entries returns a copy of the current list.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Remove deletes one entry and releases its handle. Returns false when the
// id is unknown.
func (s *Store) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.release(e.Handle)
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every entry, releasing each handle.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		s.release(e.Handle)
	}
	s.entries = nil
}

func (s *Store) release(handle string) {
	if s.releaser != nil && handle != "" {
		s.releaser.ReleaseHandle(handle)
	}
}
