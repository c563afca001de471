package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/repository"
)

var _ record.RecordRepository = (*RecordRepository)(nil)

// RecordRepository implements record.RecordRepository for SQLite
type RecordRepository struct {
	db *DB
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// EnsureCollections registers each collection, leaving existing ones untouched.
func (r *RecordRepository) EnsureCollections(ctx context.Context, collections []record.Collection) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, unavailable("failed to begin transaction", err)
	}
	now := time.Now().UTC().Format(timeLayout)
	created := 0
	for _, c := range collections {
		res, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO collections (name, created_at) VALUES (?, ?)", string(c), now,
		)
		if err != nil {
			_ = tx.Rollback()
			return 0, unavailable("failed to ensure collection", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			created += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, unavailable("failed to commit collections", err)
	}
	return created, nil
}

// Create inserts a new record
func (r *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("%w: encode payload: %w", repository.ErrInvalidInput, err)
	}

	query := `
		INSERT INTO records (collection, id, name, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		string(rec.Collection),
		rec.ID,
		rec.Name,
		string(payload),
		rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %s", repository.ErrCollectionMissing, rec.Collection)
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", repository.ErrConflict, rec.ID)
		}
		return unavailable("failed to create record", err)
	}
	return nil
}

// Get retrieves a record by collection and id
func (r *RecordRepository) Get(ctx context.Context, collection record.Collection, id string) (*record.Record, error) {
	if err := r.requireCollection(ctx, collection); err != nil {
		return nil, err
	}

	query := `
		SELECT collection, id, name, payload, created_at
		FROM records
		WHERE collection = ? AND id = ?
	`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, string(collection), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, unavailable("failed to get record", err)
	}
	return rec, nil
}

// List returns every record in a collection
func (r *RecordRepository) List(ctx context.Context, collection record.Collection) ([]record.Record, error) {
	if err := r.requireCollection(ctx, collection); err != nil {
		return nil, err
	}

	query := `
		SELECT collection, id, name, payload, created_at
		FROM records
		WHERE collection = ?
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, string(collection))
	if err != nil {
		return nil, unavailable("failed to list records", err)
	}
	defer rows.Close()

	records := []record.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, unavailable("failed to scan record", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("error iterating records", err)
	}
	return records, nil
}

// Delete removes a record
func (r *RecordRepository) Delete(ctx context.Context, collection record.Collection, id string) error {
	if err := r.requireCollection(ctx, collection); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE collection = ? AND id = ?", string(collection), id)
	if err != nil {
		return unavailable("failed to delete record", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return unavailable("failed to delete record", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *RecordRepository) requireCollection(ctx context.Context, collection record.Collection) error {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM collections WHERE name = ?", string(collection)).Scan(&count)
	if err != nil {
		return unavailable("failed to check collection", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", repository.ErrCollectionMissing, collection)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*record.Record, error) {
	var (
		rec       record.Record
		coll      string
		payload   string
		createdAt string
	)
	if err := row.Scan(&coll, &rec.ID, &rec.Name, &payload, &createdAt); err != nil {
		return nil, err
	}
	rec.Collection = record.Collection(coll)
	if err := json.Unmarshal([]byte(payload), &rec.Payload); err != nil {
		return nil, fmt.Errorf("decode payload of %s: %w", rec.ID, err)
	}
	ts, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at of %s: %w", rec.ID, err)
	}
	rec.CreatedAt = ts
	return &rec, nil
}
