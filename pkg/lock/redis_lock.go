package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker provides a coarse mutual-exclusion primitive so only one instance
// runs a settlement sweep at a time.
type Locker interface {
	// Acquire takes the named lock for ttl. It returns false when another
	// holder already owns it.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, name string) error
}

type redisLocker struct {
	client *redis.Client
	owner  string
}

func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{
		client: client,
		owner:  uuid.New().String(),
	}
}

// releaseScript deletes the lock only when this process still owns it, so a
// slow run cannot release a lock that already expired and was re-acquired.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *redisLocker) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.key(name), l.owner, ttl).Result()
}

func (l *redisLocker) Release(ctx context.Context, name string) error {
	return releaseScript.Run(ctx, l.client, []string{l.key(name)}, l.owner).Err()
}

func (l *redisLocker) key(name string) string {
	return "printmob:lock:" + name
}
