package record

import (
	"context"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
)

// RecordRepository provides persistence for records.
type RecordRepository interface {
	// EnsureCollections creates missing collections and reports how many it created.
	EnsureCollections(ctx context.Context, collections []Collection) (int, error)
	Create(ctx context.Context, rec *Record) error
	Get(ctx context.Context, collection Collection, id string) (*Record, error)
	List(ctx context.Context, collection Collection) ([]Record, error)
	Delete(ctx context.Context, collection Collection, id string) error
}

// ActivityRepository logs store mutations.
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}

// SearchRepository matches record names. An empty collection searches all.
type SearchRepository interface {
	Search(ctx context.Context, collection Collection, query string, opts SearchOptions) ([]SearchResult, error)
}
