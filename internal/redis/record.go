package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/repository"
	goredis "github.com/redis/go-redis/v9"
)

var _ record.RecordRepository = (*RecordRepository)(nil)

// RecordRepository implements record.RecordRepository on Redis hashes
type RecordRepository struct {
	client Client
	keys   keys
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(client Client, prefix string) *RecordRepository {
	return &RecordRepository{client: client, keys: newKeys(prefix)}
}

// storedRecord is what gets serialized into the collection hash
type storedRecord struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Payload   record.Payload `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

// EnsureCollections adds each collection to the registry set.
func (r *RecordRepository) EnsureCollections(ctx context.Context, collections []record.Collection) (int, error) {
	if len(collections) == 0 {
		return 0, nil
	}
	members := make([]any, 0, len(collections))
	for _, c := range collections {
		members = append(members, string(c))
	}
	added, err := r.client.SAdd(ctx, r.keys.collections(), members...).Result()
	if err != nil {
		return 0, unavailable("failed to ensure collections", err)
	}
	return int(added), nil
}

// Create stores a record unless its id is already taken
func (r *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	if err := r.requireCollection(ctx, rec.Collection); err != nil {
		return err
	}

	data, err := json.Marshal(storedRecord{
		ID:        rec.ID,
		Name:      rec.Name,
		Payload:   rec.Payload,
		CreatedAt: rec.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: encode record: %w", repository.ErrInvalidInput, err)
	}

	created, err := r.client.HSetNX(ctx, r.keys.records(string(rec.Collection)), rec.ID, data).Result()
	if err != nil {
		return unavailable("failed to create record", err)
	}
	if !created {
		return fmt.Errorf("%w: %s", repository.ErrConflict, rec.ID)
	}
	return nil
}

// Get retrieves a record by collection and id
func (r *RecordRepository) Get(ctx context.Context, collection record.Collection, id string) (*record.Record, error) {
	if err := r.requireCollection(ctx, collection); err != nil {
		return nil, err
	}

	raw, err := r.client.HGet(ctx, r.keys.records(string(collection)), id).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, unavailable("failed to get record", err)
	}
	return decodeRecord(collection, raw)
}

// List returns every record in a collection, oldest first
func (r *RecordRepository) List(ctx context.Context, collection record.Collection) ([]record.Record, error) {
	if err := r.requireCollection(ctx, collection); err != nil {
		return nil, err
	}
	return r.all(ctx, collection)
}

// Delete removes a record
func (r *RecordRepository) Delete(ctx context.Context, collection record.Collection, id string) error {
	if err := r.requireCollection(ctx, collection); err != nil {
		return err
	}

	removed, err := r.client.HDel(ctx, r.keys.records(string(collection)), id).Result()
	if err != nil {
		return unavailable("failed to delete record", err)
	}
	if removed == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecordRepository) all(ctx context.Context, collection record.Collection) ([]record.Record, error) {
	values, err := r.client.HVals(ctx, r.keys.records(string(collection))).Result()
	if err != nil {
		return nil, unavailable("failed to list records", err)
	}

	records := make([]record.Record, 0, len(values))
	for _, raw := range values {
		rec, err := decodeRecord(collection, raw)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (r *RecordRepository) requireCollection(ctx context.Context, collection record.Collection) error {
	ok, err := r.client.SIsMember(ctx, r.keys.collections(), string(collection)).Result()
	if err != nil {
		return unavailable("failed to check collection", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", repository.ErrCollectionMissing, collection)
	}
	return nil
}

func decodeRecord(collection record.Collection, raw string) (*record.Record, error) {
	var stored storedRecord
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, unavailable("failed to decode record", err)
	}
	return &record.Record{
		ID:         stored.ID,
		Collection: collection,
		Name:       stored.Name,
		Payload:    stored.Payload,
		CreatedAt:  stored.CreatedAt,
	}, nil
}

// unavailable marks a client failure as a store outage.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, repository.ErrUnavailable, err)
}
