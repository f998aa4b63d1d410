//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"nutzy-site/domain"
	"nutzy-site/infrastructure/pocketbase"
	"reflect"
)

// RecordStore is the remote content backend.
type RecordStore interface {
	Authenticate(ctx context.Context) error
	FullList(ctx context.Context, collection string, opts pocketbase.ListOptions) ([]pocketbase.Record, error)
	FirstListItem(ctx context.Context, collection, filter string) (pocketbase.Record, error)
	Create(ctx context.Context, collection string, data map[string]any) (pocketbase.Record, error)
}

// Loader refreshes one content collection from the remote store.
type Loader interface {
	Name() string
	Load(ctx context.Context) (domain.LoadReport, error)
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself, the supervisor restarts it.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// used when logging lifecycle events.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
