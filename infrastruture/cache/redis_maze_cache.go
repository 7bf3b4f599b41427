// Package cache stores generated mazes in Redis so repeated requests for the
// same spec skip generation.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "maze"
	mazeKeyFmt    = "%s:grid:%s:%dx%d:%d"
	lockSuffix    = ":gen_lock"
	lockExpiry    = 5 * time.Second
)

// RedisMazeCache caches mazes as JSON under a key derived from their spec.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	prefix string
}

var _ i.MazeCache = &RedisMazeCache{}

// NewRedisMazeCache creates a cache whose entries expire after ttl.
func NewRedisMazeCache(client *redis.Client, ttl time.Duration, prefix string) *RedisMazeCache {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &RedisMazeCache{
		client: client,
		locker: redsync.New(goredis.NewPool(client)),
		ttl:    ttl,
		prefix: prefix,
	}
}

// Get returns the cached maze for spec, or nil on a miss.
func (c *RedisMazeCache) Get(ctx context.Context, spec domain.MazeSpec) (*domain.Maze, error) {
	return decodeMaze(c.client.Get(ctx, c.key(spec)).Bytes())
}

// decodeMaze turns a GET reply into a maze. A missing key is a miss, not an error.
func decodeMaze(raw []byte, err error) (*domain.Maze, error) {
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var m domain.Maze
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decoding cached maze: %w", err)
	}
	return &m, nil
}

// Set stores m under its spec with the cache TTL.
func (c *RedisMazeCache) Set(ctx context.Context, m *domain.Maze) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(m.Spec), raw, c.ttl).Err()
}

// Lock takes a distributed lock on spec's generation.
func (c *RedisMazeCache) Lock(ctx context.Context, spec domain.MazeSpec) (func(), error) {
	mutex := c.locker.NewMutex(c.key(spec)+lockSuffix, redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func (c *RedisMazeCache) key(spec domain.MazeSpec) string {
	return Key(c.prefix, spec)
}

// Key formats the cache key of a spec.
func Key(prefix string, spec domain.MazeSpec) string {
	return fmt.Sprintf(mazeKeyFmt, prefix, spec.Algorithm, spec.Width, spec.Height, spec.Seed)
}
