//go:generate go run go.uber.org/mock/mockgen -source=subscription.go -destination=../mocks/mock_subscription_repository.go -package=mocks
package repositories

import (
	goerrors "errors"
	"fmt"
	"log/slog"
	"nutzy-site/errors"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// DefaultClaimTTL bounds how long a pending claim blocks other submissions of the same email.
// A process crashing between claim and confirm must not lock an address forever.
const DefaultClaimTTL = 2 * time.Minute

type SubscriptionState string

const (
	StatePending   SubscriptionState = "pending"
	StateConfirmed SubscriptionState = "confirmed"
)

type ISubscriptionRepository interface {
	Claim(email string, at time.Time) (Subscription, error)
	Confirm(email, remoteID string, at time.Time) error
	Release(email string) error
	Get(email string) (Subscription, error)
}

type Subscription struct {
	Email     string
	RemoteID  string
	State     SubscriptionState
	UpdatedAt time.Time
}

type SubscriptionRepository struct {
	db       *badger.DB
	log      *slog.Logger
	claimTTL time.Duration
}

func NewSubscriptionRepository(db *badger.DB, log *slog.Logger, claimTTL time.Duration) *SubscriptionRepository {
	if claimTTL <= 0 {
		claimTTL = DefaultClaimTTL
	}
	return &SubscriptionRepository{db: db, log: log, claimTTL: claimTTL}
}

// NormalizeEmail is the claim key form of an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func subscriptionKey(email string) []byte {
	return []byte("newsletter:" + NormalizeEmail(email))
}

// Claim takes the newsletter slot of an email inside a single transaction.
// A confirmed subscription returns ErrAlreadySubscribed along with the stored record,
// a fresh pending claim of another submission returns ErrClaimPending.
// Badger aborts one of two concurrent claims with ErrConflict, which is reported as pending.
func (r SubscriptionRepository) Claim(email string, at time.Time) (Subscription, error) {
	var existing Subscription
	err := r.db.Update(func(txn *badger.Txn) error {
		key := subscriptionKey(email)
		item, err := txn.Get(key)
		switch {
		case err == nil:
			if err := item.Value(func(value []byte) error {
				existing, err = toSubscription(value)
				return err
			}); err != nil {
				return err
			}
			if existing.State == StateConfirmed {
				return errors.ErrAlreadySubscribed
			}
			if at.Sub(existing.UpdatedAt) < r.claimTTL {
				return errors.ErrClaimPending
			}
			r.log.Debug("Taking over stale newsletter claim", "since", existing.UpdatedAt)
		case !goerrors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		value, err := fromSubscription(Subscription{Email: NormalizeEmail(email), State: StatePending, UpdatedAt: at})
		if err != nil {
			return err
		}
		return txn.Set(key, value)
	})
	if goerrors.Is(err, badger.ErrConflict) {
		return Subscription{}, errors.ErrClaimPending
	}
	if err != nil {
		return existing, err
	}
	return Subscription{Email: NormalizeEmail(email), State: StatePending, UpdatedAt: at}, nil
}

// Confirm records the remote id once the subscription exists remotely.
func (r SubscriptionRepository) Confirm(email, remoteID string, at time.Time) error {
	value, err := fromSubscription(Subscription{
		Email:     NormalizeEmail(email),
		RemoteID:  remoteID,
		State:     StateConfirmed,
		UpdatedAt: at,
	})
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(subscriptionKey(email), value)
	})
}

// Release drops a pending claim after a failed submission. Confirmed records are kept.
func (r SubscriptionRepository) Release(email string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := subscriptionKey(email)
		item, err := txn.Get(key)
		if goerrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		var current Subscription
		if err := item.Value(func(value []byte) error {
			current, err = toSubscription(value)
			return err
		}); err != nil {
			return err
		}
		if current.State == StateConfirmed {
			return nil
		}
		return txn.Delete(key)
	})
}

func (r SubscriptionRepository) Get(email string) (Subscription, error) {
	var sub Subscription
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(subscriptionKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			sub, err = toSubscription(value)
			return err
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return Subscription{}, fmt.Errorf("%s: %w", NormalizeEmail(email), errors.ErrEntryNotFound)
	}
	return sub, err
}

// List returns every stored claim, pending or confirmed, in key order.
func (r SubscriptionRepository) List() ([]Subscription, error) {
	var subs []Subscription
	prefix := []byte("newsletter:")
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(value []byte) error {
				sub, err := toSubscription(value)
				if err != nil {
					return err
				}
				subs = append(subs, sub)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return subs, err
}

func fromSubscription(sub Subscription) ([]byte, error) {
	ts := timestamppb.New(sub.UpdatedAt)
	s, err := structpb.NewStruct(map[string]any{
		"email":          sub.Email,
		"remoteId":       sub.RemoteID,
		"state":          string(sub.State),
		"updatedSeconds": float64(ts.GetSeconds()),
		"updatedNanos":   float64(ts.GetNanos()),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func toSubscription(value []byte) (Subscription, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(value, &s); err != nil {
		return Subscription{}, err
	}
	fields := s.GetFields()
	return Subscription{
		Email:     fields["email"].GetStringValue(),
		RemoteID:  fields["remoteId"].GetStringValue(),
		State:     SubscriptionState(fields["state"].GetStringValue()),
		UpdatedAt: timestampFrom(fields["updatedSeconds"], fields["updatedNanos"]),
	}, nil
}
