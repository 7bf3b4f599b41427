package sortedstorage

import (
	"context"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const defaultMaxLen = 500

// RedisSortedQueue manages a capped sorted set in Redis with TTL support.
type RedisSortedQueue struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	maxLen int64
}

var _ i.SortedQueue = &RedisSortedQueue{}

// NewRedisSortedQueue initializes a RedisSortedQueue with the provided Redis client and TTL.
// Queues keep at most maxLen members; non-positive maxLen uses the default.
func NewRedisSortedQueue(client *redis.Client, ttl time.Duration, maxLen int64) *RedisSortedQueue {
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}
	queue := &RedisSortedQueue{
		client: client,
		ttl:    ttl,
		maxLen: maxLen,
	}
	pool := goredis.NewPool(client)
	queue.locker = redsync.New(pool)
	return queue
}

// Enqueue adds a member to the sorted queue with a given score, refreshes the
// key's expiration and trims the lowest scores beyond the cap.
func (rsq *RedisSortedQueue) Enqueue(ctx context.Context, queueKey string, score float64, member string) error {
	if err := rsq.client.ZAdd(ctx, queueKey, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return err
	}

	if rsq.ttl > 0 {
		_ = rsq.client.Expire(ctx, queueKey, rsq.ttl).Err()
	}

	if rsq.Count(ctx, queueKey) > rsq.maxLen {
		return rsq.trim(ctx, queueKey)
	}
	return nil
}

// trim removes the lowest scored members so at most maxLen remain.
func (rsq *RedisSortedQueue) trim(ctx context.Context, queueKey string) error {
	mutex := rsq.locker.NewMutex(queueKey + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	return rsq.client.ZRemRangeByRank(ctx, queueKey, 0, trimStop(rsq.maxLen)).Err()
}

// trimStop is the last ascending rank to remove so the maxLen highest scores stay.
// Negative ranks count from the highest score, -1 being the top member.
func trimStop(maxLen int64) int64 {
	return -(maxLen + 1)
}

// Tops retrieves up to `amount` members with the highest scores, highest first.
func (rsq *RedisSortedQueue) Tops(ctx context.Context, queueKey string, amount int64) ([]string, error) {
	if amount <= 0 {
		return []string{}, nil
	}

	start, stop := topsRange(amount)
	return rsq.client.ZRevRange(ctx, queueKey, start, stop).Result()
}

func topsRange(amount int64) (int64, int64) {
	return 0, amount - 1
}

// Count returns the number of members in the sorted queue.
func (rsq *RedisSortedQueue) Count(ctx context.Context, queueKey string) int64 {
	return rsq.client.ZCard(ctx, queueKey).Val()
}
