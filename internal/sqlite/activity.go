package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
)

var (
	_ activity.Repository       = (*ActivityRepository)(nil)
	_ record.ActivityRepository = (*ActivityRepository)(nil)
)

// ActivityRepository implements activity.Repository for SQLite
type ActivityRepository struct {
	db *DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Log inserts a new activity entry
func (r *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO activity_log (collection, record_id, activity_type, summary, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		entry.Collection,
		entry.RecordID,
		string(entry.ActivityType),
		entry.Summary,
		createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return unavailable("failed to log activity", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}
	entry.CreatedAt = createdAt
	return nil
}

// List returns activity entries matching the given filters, newest first
func (r *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	query := `
		SELECT id, collection, record_id, activity_type, summary, created_at
		FROM activity_log
	`

	var (
		args       []any
		conditions []string
	)
	if opts.Collection != "" {
		conditions = append(conditions, "collection = ?")
		args = append(args, opts.Collection)
	}
	if opts.RecordID != "" {
		conditions = append(conditions, "record_id = ?")
		args = append(args, opts.RecordID)
	}
	if opts.ActivityType != nil {
		conditions = append(conditions, "activity_type = ?")
		args = append(args, string(*opts.ActivityType))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, unavailable("failed to list activity", err)
	}
	defer rows.Close()

	entries := []activity.ActivityEntry{}
	for rows.Next() {
		var (
			entry     activity.ActivityEntry
			kind      string
			createdAt string
		)
		if err := rows.Scan(&entry.ID, &entry.Collection, &entry.RecordID, &kind, &entry.Summary, &createdAt); err != nil {
			return nil, unavailable("failed to scan activity entry", err)
		}
		entry.ActivityType = activity.ActivityType(kind)
		ts, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse activity timestamp: %w", err)
		}
		entry.CreatedAt = ts
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("error iterating activity rows", err)
	}
	return entries, nil
}
