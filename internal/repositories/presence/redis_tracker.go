// Package presence tracks recently active visitors in a Redis sorted set.
package presence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

// DefaultKey is the sorted set holding visitor IDs scored by last-seen unix millis.
const DefaultKey = "carmarket:presence"

// Retention is how long a visitor entry is kept after it was last touched.
const Retention = 30 * time.Minute

// RedisTracker implements PresenceTracker with ZADD/ZCOUNT.
type RedisTracker struct {
	client redis.Cmdable
	key    string
}

// NewRedisTracker creates a tracker on client. An empty key uses DefaultKey.
func NewRedisTracker(client redis.Cmdable, key string) *RedisTracker {
	if key == "" {
		key = DefaultKey
	}
	return &RedisTracker{client: client, key: key}
}

var _ portsrepo.PresenceTracker = (*RedisTracker)(nil)

func (t *RedisTracker) Touch(ctx context.Context, visitorID string, at time.Time) error {
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, t.key, redis.Z{Score: float64(at.UnixMilli()), Member: visitorID})
		pipe.ZRemRangeByScore(ctx, t.key, "-inf", "("+score(at.Add(-Retention)))
		pipe.Expire(ctx, t.key, Retention)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record presence: %w", err)
	}
	return nil
}

func (t *RedisTracker) CountOnline(ctx context.Context, since time.Time) (int64, error) {
	n, err := t.client.ZCount(ctx, t.key, score(since), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count online visitors: %w", err)
	}
	return n, nil
}

func score(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// Connect opens a Redis client and verifies it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}
