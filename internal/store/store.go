// Package store opens the configured storage backend.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RawAnimal/EncounterBuilder/internal/config"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/activity"
	"github.com/RawAnimal/EncounterBuilder/internal/domain/record"
	"github.com/RawAnimal/EncounterBuilder/internal/redis"
	"github.com/RawAnimal/EncounterBuilder/internal/repository"
	"github.com/RawAnimal/EncounterBuilder/internal/sqlite"
)

// Backend bundles the repositories of one storage driver.
type Backend struct {
	Driver   string
	Records  record.RecordRepository
	Activity activity.Repository
	Search   record.SearchRepository

	close func() error
}

// Close releases the underlying connection.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects to the backend named by cfg.Driver. SQLite migrations are
// applied; Redis is pinged so an unreachable server fails here.
func Open(ctx context.Context, cfg config.StorageConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return openSQLite(ctx, cfg.SQLitePath)
	case config.DriverRedis:
		return openRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func openSQLite(ctx context.Context, path string) (*Backend, error) {
	if err := ensureDBDir(path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w: %w", repository.ErrUnavailable, err)
	}
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w: %w", repository.ErrUnavailable, err)
	}
	return &Backend{
		Driver:   config.DriverSQLite,
		Records:  sqlite.NewRecordRepository(db),
		Activity: sqlite.NewActivityRepository(db),
		Search:   sqlite.NewSearchRepository(db),
		close:    db.Close,
	}, nil
}

// NewRedis builds a backend on an existing client, as tests do with miniredis.
func NewRedis(client redis.Client, prefix string) *Backend {
	return &Backend{
		Driver:   config.DriverRedis,
		Records:  redis.NewRecordRepository(client, prefix),
		Activity: redis.NewActivityRepository(client, prefix),
		Search:   redis.NewSearchRepository(client, prefix),
		close:    client.Close,
	}
}

func openRedis(ctx context.Context, addr, prefix string) (*Backend, error) {
	client, err := redis.NewClient(addr, nil)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w: %w", repository.ErrUnavailable, err)
	}
	return NewRedis(client, prefix), nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
