// Package content holds loaded entries and the pure helpers that work on them.
package content

import (
	"sync/atomic"
	"time"
)

// Rendered is the pre-rendered body of an entry plus the frontmatter pages display.
type Rendered struct {
	HTML        string         `json:"html"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
}

// Entry is a normalized, schema-validated record held in a Store.
type Entry[T any] struct {
	ID       string   `json:"id"`
	Data     T        `json:"data"`
	Digest   string   `json:"digest"`
	Rendered Rendered `json:"rendered"`
}

// Snapshot is the immutable result of one load cycle.
// Available is false when the remote store could not be reached.
type Snapshot[T any] struct {
	entries   []Entry[T]
	index     map[string]int
	Available bool
	LoadedAt  time.Time
}

func NewSnapshot[T any](entries []Entry[T], available bool, loadedAt time.Time) *Snapshot[T] {
	index := make(map[string]int, len(entries))
	kept := make([]Entry[T], 0, len(entries))
	for _, e := range entries {
		if i, ok := index[e.ID]; ok {
			kept[i] = e
			continue
		}
		index[e.ID] = len(kept)
		kept = append(kept, e)
	}
	return &Snapshot[T]{entries: kept, index: index, Available: available, LoadedAt: loadedAt}
}

// Entries returns a copy in load order.
func (s *Snapshot[T]) Entries() []Entry[T] {
	out := make([]Entry[T], len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Snapshot[T]) Get(id string) (Entry[T], bool) {
	i, ok := s.index[id]
	if !ok {
		return Entry[T]{}, false
	}
	return s.entries[i], true
}

func (s *Snapshot[T]) Len() int {
	return len(s.entries)
}

// Store publishes snapshots. Only the loader writes; readers never see a partial load.
type Store[T any] struct {
	current atomic.Pointer[Snapshot[T]]
}

func NewStore[T any]() *Store[T] {
	s := &Store[T]{}
	s.current.Store(NewSnapshot[T](nil, false, time.Time{}))
	return s
}

// Replace swaps in a new snapshot atomically.
func (s *Store[T]) Replace(snapshot *Snapshot[T]) {
	s.current.Store(snapshot)
}

func (s *Store[T]) Snapshot() *Snapshot[T] {
	return s.current.Load()
}

func (s *Store[T]) All() []Entry[T] {
	return s.Snapshot().Entries()
}

func (s *Store[T]) Get(id string) (Entry[T], bool) {
	return s.Snapshot().Get(id)
}
