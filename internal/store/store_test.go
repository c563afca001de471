package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/RawAnimal/EncounterBuilder/internal/config"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/party"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/repository"
	"github.com/RawAnimal/EncounterBuilder/internal/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func saveAndFind(t *testing.T, b *store.Backend) {
	t.Helper()
	ctx := context.Background()
	svc := record.NewService(b.Records, b.Activity, b.Search, nil)
	require.NoError(t, svc.Init(ctx))

	id, err := svc.Save(ctx, record.CollectionParties, record.SaveRequest{
		Name:    "Dawn Patrol",
		Payload: record.Payload{Members: []party.Character{{Name: "Ayla", Level: 3}}},
	})
	require.NoError(t, err)

	rec, found, err := svc.Get(ctx, record.CollectionParties, id)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "Dawn Patrol", rec.Name)

	results, err := svc.Search(ctx, record.CollectionParties, "dawn", record.SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, id, results[0].Record.ID)
}

func TestOpen_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "encounters.db")
	b, err := store.Open(context.Background(), config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	defer b.Close()
	require.Equal(t, config.DriverSQLite, b.Driver)
	saveAndFind(t, b)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	b, err := store.Open(context.Background(), config.StorageConfig{Driver: config.DriverRedis, RedisAddr: mr.Addr(), RedisPrefix: "test"})
	require.NoError(t, err)
	defer b.Close()
	require.Equal(t, config.DriverRedis, b.Driver)
	saveAndFind(t, b)
	require.True(t, mr.Exists("test:collections"))
}

func TestOpen_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := store.Open(context.Background(), config.StorageConfig{Driver: config.DriverRedis, RedisAddr: addr})
	require.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := store.Open(context.Background(), config.StorageConfig{Driver: "postgres"})
	require.ErrorContains(t, err, "unknown storage driver")
}
