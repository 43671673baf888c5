package redis

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// BatchLock implements usecase.BatchLock using Redis SET NX.
type BatchLock struct {
	client *redis.Client
	prefix string
	token  string
}

// NewBatchLock creates a new BatchLock. Each instance holds its own token.
func NewBatchLock(client *redis.Client) *BatchLock {
	return &BatchLock{
		client: client,
		prefix: "lock:",
		token:  ulid.Make().String(),
	}
}

// Acquire takes the lock for ttl. It returns false when another holder has it.
func (l *BatchLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.prefix+key, l.token, ttl).Result()
}

// Release drops the lock if this instance still holds it.
func (l *BatchLock) Release(ctx context.Context, key string) error {
	return releaseScript.Run(ctx, l.client, []string{l.prefix + key}, l.token).Err()
}
