//go:generate go run go.uber.org/mock/mockgen -source=digest.go -destination=../mocks/mock_digest_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type IDigestRepository interface {
	GetDigests(collection string) (map[string]string, error)
	ReplaceDigests(collection string, digests map[string]string, at time.Time) error
}

// DigestRepository remembers the digest of every entry of the last successful load,
// so the next load can tell which entries changed.
type DigestRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewDigestRepository(db *badger.DB, log *slog.Logger) *DigestRepository {
	return &DigestRepository{db: db, log: log}
}

// StoredDigest is the persisted form of one entry digest.
type StoredDigest struct {
	EntryID  string
	Digest   string
	StoredAt time.Time
}

func digestPrefix(collection string) []byte {
	return []byte(fmt.Sprintf("digest:%s:", collection))
}

// GetDigests returns entry id -> digest for a collection using a prefix scan.
func (r DigestRepository) GetDigests(collection string) (map[string]string, error) {
	digests := make(map[string]string)
	prefix := digestPrefix(collection)
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(value []byte) error {
				stored, err := toStoredDigest(value)
				if err != nil {
					return err
				}
				digests[stored.EntryID] = stored.Digest
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return digests, nil
}

// ReplaceDigests swaps the stored digests of a collection in one transaction.
func (r DigestRepository) ReplaceDigests(collection string, digests map[string]string, at time.Time) error {
	prefix := digestPrefix(collection)
	return r.db.Update(func(txn *badger.Txn) error {
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := string(it.Item().Key()[len(prefix):])
			if _, ok := digests[id]; !ok {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		for id, digest := range digests {
			value, err := fromStoredDigest(StoredDigest{EntryID: id, Digest: digest, StoredAt: at})
			if err != nil {
				return err
			}
			if err := txn.Set(append(append([]byte{}, prefix...), id...), value); err != nil {
				return err
			}
		}
		r.log.Debug("Digests replaced", "collection", collection, "count", len(digests), "removed", len(stale))
		return nil
	})
}

func fromStoredDigest(d StoredDigest) ([]byte, error) {
	ts := timestamppb.New(d.StoredAt)
	s, err := structpb.NewStruct(map[string]any{
		"entryId":       d.EntryID,
		"digest":        d.Digest,
		"storedSeconds": float64(ts.GetSeconds()),
		"storedNanos":   float64(ts.GetNanos()),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func toStoredDigest(value []byte) (StoredDigest, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return StoredDigest{}, err
	}
	fields := s.GetFields()
	return StoredDigest{
		EntryID:  fields["entryId"].GetStringValue(),
		Digest:   fields["digest"].GetStringValue(),
		StoredAt: timestampFrom(fields["storedSeconds"], fields["storedNanos"]),
	}, nil
}

func timestampFrom(seconds, nanos *structpb.Value) time.Time {
	ts := &timestamppb.Timestamp{
		Seconds: int64(seconds.GetNumberValue()),
		Nanos:   int32(nanos.GetNumberValue()),
	}
	if ts.CheckValid() != nil {
		return time.Time{}
	}
	return ts.AsTime()
}
