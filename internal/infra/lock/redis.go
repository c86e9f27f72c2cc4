package lock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL           = 5 * time.Second
	defaultRetryInterval = 25 * time.Millisecond
	releaseTimeout       = time.Second
)

// Снимаем ключ, только если он все еще наш: после истечения TTL его мог взять другой инстанс
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker распределенная блокировка по ключу для нескольких инстансов сервиса.
// SET NX PX с уникальным токеном, освобождение Lua скриптом.
type RedisLocker struct {
	rdb    *redis.Client
	ttl    time.Duration
	retry  time.Duration
	prefix string
}

// NewRedisLocker создает RedisLocker. Нулевые ttl и retry заменяются значениями по умолчанию.
func NewRedisLocker(rdb *redis.Client, ttl, retry time.Duration, prefix string) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if retry <= 0 {
		retry = defaultRetryInterval
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "slotlock"
	}
	return &RedisLocker{rdb: rdb, ttl: ttl, retry: retry, prefix: prefix}
}

// Lock берет блокировку на key, повторяя попытки каждые retry до отмены ctx
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + ":" + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
			}
			return nil, fmt.Errorf("%w: SetNX %s: %v", ErrLockUnavailable, key, err)
		}
		if ok {
			return l.unlocker(redisKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlocker(redisKey, token string) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true

		// контекст запроса к этому моменту может быть уже отменен
		ctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		_ = releaseScript.Run(ctx, l.rdb, []string{redisKey}, token).Err()
	}
}
