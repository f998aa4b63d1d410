package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDigestRepository_ReplaceAndGet(t *testing.T) {
	req := require.New(t)
	repo := NewDigestRepository(openTestDB(t), slog.Default())
	now := time.Now().UTC()

	digests, err := repo.GetDigests("blog_posts")
	req.NoError(err)
	req.Empty(digests)

	req.NoError(repo.ReplaceDigests("blog_posts", map[string]string{"a": "111", "b": "222"}, now))
	req.NoError(repo.ReplaceDigests("events", map[string]string{"a": "999"}, now))

	digests, err = repo.GetDigests("blog_posts")
	req.NoError(err)
	req.Equal(map[string]string{"a": "111", "b": "222"}, digests)

	// Given a second load where b disappeared and a changed
	req.NoError(repo.ReplaceDigests("blog_posts", map[string]string{"a": "333", "c": "444"}, now.Add(time.Minute)))

	digests, err = repo.GetDigests("blog_posts")
	req.NoError(err)
	req.Equal(map[string]string{"a": "333", "c": "444"}, digests)

	// Then other collections are untouched
	events, err := repo.GetDigests("events")
	req.NoError(err)
	req.Equal(map[string]string{"a": "999"}, events)
}

func TestDigestRepository_StoredValueRoundTrip(t *testing.T) {
	req := require.New(t)
	at := time.Date(2025, 7, 23, 10, 30, 0, 123, time.UTC)
	value, err := fromStoredDigest(StoredDigest{EntryID: "x", Digest: "abc", StoredAt: at})
	req.NoError(err)

	stored, err := toStoredDigest(value)
	req.NoError(err)
	req.Equal("x", stored.EntryID)
	req.Equal("abc", stored.Digest)
	req.True(at.Equal(stored.StoredAt))
}
