package record

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/repository"
	"github.com/google/uuid"
)

// Service is the local record store: three collections of named snapshots.
type Service struct {
	records    RecordRepository
	activities ActivityRepository
	search     SearchRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new record service. activities and search may be nil.
func NewService(
	records RecordRepository,
	activities ActivityRepository,
	search SearchRepository,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		records:    records,
		activities: activities,
		search:     search,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SaveRequest describes a record save. ID is optional.
type SaveRequest struct {
	ID      string
	Name    string
	Payload Payload
}

// Init ensures every collection exists. Safe to call repeatedly.
func (s *Service) Init(ctx context.Context) error {
	created, err := s.records.EnsureCollections(ctx, Collections())
	if err != nil {
		return s.storageError(ctx, "initializing collections", err)
	}
	if created == 0 {
		return nil
	}
	s.logActivity(ctx, &activity.ActivityEntry{
		ActivityType: activity.TypeCollectionsInitialized,
		Summary:      "collections initialized",
	})
	return nil
}

// Save stores a new record and returns its id.
func (s *Service) Save(ctx context.Context, c Collection, req SaveRequest) (string, error) {
	if err := ValidateSave(c, req); err != nil {
		return "", err
	}

	id := strings.TrimSpace(req.ID)
	if id == "" {
		id = uuid.NewString()
	}

	rec := &Record{
		ID:         id,
		Collection: c,
		Name:       strings.TrimSpace(req.Name),
		Payload:    req.Payload.normalizedFor(c),
		CreatedAt:  s.now(),
	}
	if err := s.records.Create(ctx, rec); err != nil {
		return "", s.storageError(ctx, "saving record", err)
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		Collection:   string(c),
		RecordID:     rec.ID,
		ActivityType: activity.TypeRecordSaved,
		Summary:      fmt.Sprintf("saved %q to %s", rec.Name, c),
	})
	return rec.ID, nil
}

// Get returns the record with id. A missing record is (nil, false, nil).
func (s *Service) Get(ctx context.Context, c Collection, id string) (*Record, bool, error) {
	if err := checkTarget(c, id); err != nil {
		return nil, false, err
	}
	rec, err := s.records.Get(ctx, c, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, s.storageError(ctx, "loading record", err)
	}
	rec.Payload = rec.Payload.normalizedFor(c)
	return rec, true, nil
}

// List returns every record in the collection in unspecified order.
func (s *Service) List(ctx context.Context, c Collection) ([]Record, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrCollectionMissing, c)
	}
	recs, err := s.records.List(ctx, c)
	if err != nil {
		return nil, s.storageError(ctx, "listing records", err)
	}
	out := make([]Record, 0, len(recs))
	for _, rec := range recs {
		rec.Payload = rec.Payload.normalizedFor(c)
		out = append(out, rec)
	}
	return out, nil
}

// Remove deletes the record with id. A missing record is (false, nil).
func (s *Service) Remove(ctx context.Context, c Collection, id string) (bool, error) {
	if err := checkTarget(c, id); err != nil {
		return false, err
	}
	id = strings.TrimSpace(id)
	if err := s.records.Delete(ctx, c, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, s.storageError(ctx, "deleting record", err)
	}

	s.logActivity(ctx, &activity.ActivityEntry{
		Collection:   string(c),
		RecordID:     id,
		ActivityType: activity.TypeRecordDeleted,
		Summary:      fmt.Sprintf("deleted %s from %s", id, c),
	})
	return true, nil
}

// LoadAll reads each collection in full.
func (s *Service) LoadAll(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	for _, c := range Collections() {
		recs, err := s.List(ctx, c)
		if err != nil {
			return Snapshot{}, err
		}
		switch c {
		case CollectionParties:
			snap.Parties = recs
		case CollectionAdversaries:
			snap.Adversaries = recs
		case CollectionEncounters:
			snap.Encounters = recs
		}
	}
	return snap, nil
}

// Search matches record names. An empty collection searches all of them.
func (s *Service) Search(ctx context.Context, c Collection, query string, opts SearchOptions) ([]SearchResult, error) {
	if s.search == nil {
		return nil, fmt.Errorf("%w: search not configured", ErrStorageUnavailable)
	}
	if c != "" && !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrCollectionMissing, c)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	results, err := s.search.Search(ctx, c, query, opts)
	if err != nil {
		return nil, s.storageError(ctx, "searching records", err)
	}
	if results == nil {
		results = []SearchResult{}
	}
	return results, nil
}

func checkTarget(c Collection, id string) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %q", ErrCollectionMissing, c)
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	return nil
}

// storageError maps a repository failure to the record error taxonomy and
// logs it once.
func (s *Service) storageError(ctx context.Context, op string, err error) error {
	var kind error
	switch {
	case errors.Is(err, repository.ErrCollectionMissing):
		kind = ErrCollectionMissing
	case errors.Is(err, repository.ErrConflict):
		kind = ErrDuplicateID
	case errors.Is(err, repository.ErrInvalidInput):
		kind = ErrInvalidInput
	default:
		kind = ErrStorageUnavailable
	}
	s.logger.ErrorContext(ctx, "record store failure", "op", op, "kind", kind, "error", err)
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

func (s *Service) logActivity(ctx context.Context, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	entry.CreatedAt = s.now()
	if err := s.activities.Log(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "activity log failed", "type", entry.ActivityType, "error", err)
	}
}
