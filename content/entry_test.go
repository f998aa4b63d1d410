package content

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type note struct {
	Title string `json:"title"`
}

func TestSnapshot_LastDuplicateWins(t *testing.T) {
	req := require.New(t)
	s := NewSnapshot([]Entry[note]{
		{ID: "a", Data: note{"first"}},
		{ID: "b", Data: note{"b"}},
		{ID: "a", Data: note{"second"}},
	}, true, time.Now())

	req.Equal(2, s.Len())
	entries := s.Entries()
	req.Equal("a", entries[0].ID)
	req.Equal("second", entries[0].Data.Title)

	got, ok := s.Get("a")
	req.True(ok)
	req.Equal("second", got.Data.Title)

	_, ok = s.Get("missing")
	req.False(ok)
}

func TestSnapshot_EntriesIsACopy(t *testing.T) {
	req := require.New(t)
	s := NewSnapshot([]Entry[note]{{ID: "a", Data: note{"x"}}}, true, time.Now())
	entries := s.Entries()
	entries[0].Data.Title = "mutated"
	got, _ := s.Get("a")
	req.Equal("x", got.Data.Title)
}

func TestStore_StartsUnavailable(t *testing.T) {
	req := require.New(t)
	store := NewStore[note]()
	req.False(store.Snapshot().Available)
	req.Empty(store.All())
}

func TestStore_ReadersSeeWholeSnapshots(t *testing.T) {
	req := require.New(t)
	store := NewStore[note]()
	full := func(n int) *Snapshot[note] {
		entries := make([]Entry[note], n)
		for i := range entries {
			entries[i] = Entry[note]{ID: string(rune('a' + i))}
		}
		return NewSnapshot(entries, true, time.Now())
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				store.Replace(full(3))
			} else {
				store.Replace(full(5))
			}
		}
	}()
	var sizes sync.Map
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			sizes.Store(len(store.All()), true)
		}
	}()
	wg.Wait()

	sizes.Range(func(k, _ any) bool {
		req.Contains([]int{0, 3, 5}, k)
		return true
	})
}

func TestDigest_StableAndSensitive(t *testing.T) {
	req := require.New(t)
	a, err := Digest(note{"hello"})
	req.NoError(err)
	b, err := Digest(note{"hello"})
	req.NoError(err)
	c, err := Digest(note{"hello!"})
	req.NoError(err)

	req.Equal(a, b)
	req.NotEqual(a, c)
	req.Len(a, 64)
}
