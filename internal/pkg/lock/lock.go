package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotHeld is returned by Release when the lock expired or was taken over.
var ErrNotHeld = errors.New("lock not held")

// Locker hands out named leases so a periodic job runs on one replica only.
type Locker interface {
	// TryAcquire returns a release func when the lease was obtained, or a
	// nil func when another holder owns it.
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// Only the holder's token may delete the key.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client   redis.Cmdable
	prefix   string
	newToken func() string
}

func NewRedisLocker(client redis.Cmdable) *RedisLocker {
	return &RedisLocker{client: client, prefix: "lock:", newToken: uuid.NewString}
}

// TryAcquire implements Locker.
func (l *RedisLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	token := l.newToken()
	name := l.prefix + key

	ok, err := l.client.SetNX(ctx, name, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}

	return func(ctx context.Context) error {
		n, err := releaseScript.Run(ctx, l.client, []string{name}, token).Int64()
		if err != nil {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		if n == 0 {
			return ErrNotHeld
		}
		return nil
	}, nil
}

// LocalLocker always grants the lease. It serves single-instance setups.
type LocalLocker struct{}

// TryAcquire implements Locker.
func (LocalLocker) TryAcquire(context.Context, string, time.Duration) (func(context.Context) error, error) {
	return func(context.Context) error { return nil }, nil
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return client, nil
}
