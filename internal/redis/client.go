// Package redis stores records, activity and name search in Redis as an
// alternative to the SQLite file.
//
// Layout under a key prefix:
//
//	{prefix}:collections              set of ensured collection names
//	{prefix}:records:{collection}     hash of record id -> JSON record
//	{prefix}:activity                 list of JSON activity entries, newest first
//	{prefix}:activity:seq             activity id counter
package redis

import (
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client wraps redis.UniversalClient to allow for easy substitution in tests
type Client interface {
	goredis.UniversalClient
}

// Options configures Redis client behavior
type Options struct {
	PoolSize     int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewClient creates a Redis client for a single instance. Redis connects
// lazily, so an unreachable endpoint surfaces on first use.
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.New("redis: endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}
	return goredis.NewClient(&goredis.Options{
		Addr:         endpoint,
		PoolSize:     opts.PoolSize,
		MaxRetries:   opts.MaxRetries,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}), nil
}

// DefaultPrefix namespaces keys when none is configured.
const DefaultPrefix = "encounter"

type keys struct {
	prefix string
}

func newKeys(prefix string) keys {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return keys{prefix: prefix}
}

func (k keys) collections() string { return k.prefix + ":collections" }
func (k keys) records(collection string) string { return k.prefix + ":records:" + collection }
func (k keys) activity() string { return k.prefix + ":activity" }
func (k keys) activitySeq() string { return k.prefix + ":activity:seq" }
