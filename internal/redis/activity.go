package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/repository"
)

var (
	_ activity.Repository       = (*ActivityRepository)(nil)
	_ record.ActivityRepository = (*ActivityRepository)(nil)
)

// MaxActivityEntries caps the activity list; older entries are trimmed.
const MaxActivityEntries = 1000

// ActivityRepository implements activity.Repository on a capped Redis list
type ActivityRepository struct {
	client Client
	keys   keys
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(client Client, prefix string) *ActivityRepository {
	return &ActivityRepository{client: client, keys: newKeys(prefix)}
}

// Log prepends an entry and trims the list
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	id, err := r.client.Incr(ctx, r.keys.activitySeq()).Result()
	if err != nil {
		return unavailable("failed to allocate activity id", err)
	}
	entry.ID = id
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: encode activity: %w", repository.ErrInvalidInput, err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.keys.activity(), data)
	pipe.LTrim(ctx, r.keys.activity(), 0, MaxActivityEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return unavailable("failed to log activity", err)
	}
	return nil
}

// List returns entries matching the filters, newest first
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	values, err := r.client.LRange(ctx, r.keys.activity(), 0, -1).Result()
	if err != nil {
		return nil, unavailable("failed to list activity", err)
	}

	entries := []activity.ActivityEntry{}
	skipped := 0
	for _, raw := range values {
		var entry activity.ActivityEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, unavailable("failed to decode activity", err)
		}
		if !matches(entry, opts) {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		entries = append(entries, entry)
		if opts.Limit > 0 && len(entries) == opts.Limit {
			break
		}
	}
	return entries, nil
}

func matches(entry activity.ActivityEntry, opts activity.ListActivityOptions) bool {
	if opts.Collection != "" && entry.Collection != opts.Collection {
		return false
	}
	if opts.RecordID != "" && entry.RecordID != opts.RecordID {
		return false
	}
	if opts.ActivityType != nil && entry.ActivityType != *opts.ActivityType {
		return false
	}
	return true
}
