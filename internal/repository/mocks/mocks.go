package mocks

import (
	"context"

	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/stretchr/testify/mock"
)

var (
	_ record.RecordRepository   = (*RecordRepository)(nil)
	_ record.ActivityRepository = (*ActivityRepository)(nil)
	_ record.SearchRepository   = (*SearchRepository)(nil)
	_ activity.Repository       = (*ActivityRepository)(nil)
)

// RecordRepository is a mock for record.RecordRepository.
type RecordRepository struct {
	mock.Mock
}

func (m *RecordRepository) EnsureCollections(ctx context.Context, collections []record.Collection) (int, error) {
	args := m.Called(ctx, collections)
	return args.Int(0), args.Error(1)
}

func (m *RecordRepository) Create(ctx context.Context, rec *record.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *RecordRepository) Get(ctx context.Context, collection record.Collection, id string) (*record.Record, error) {
	args := m.Called(ctx, collection, id)
	if rec, ok := args.Get(0).(*record.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) List(ctx context.Context, collection record.Collection) ([]record.Record, error) {
	args := m.Called(ctx, collection)
	if list, ok := args.Get(0).([]record.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordRepository) Delete(ctx context.Context, collection record.Collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

// ActivityRepository is a mock for activity.Repository and record.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SearchRepository is a mock for record.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, collection record.Collection, query string, opts record.SearchOptions) ([]record.SearchResult, error) {
	args := m.Called(ctx, collection, query, opts)
	if list, ok := args.Get(0).([]record.SearchResult); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
