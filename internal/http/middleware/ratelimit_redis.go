package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"jobmatch/internal/observability"
)

const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter is a fixed-window limiter shared by every API instance that
// points at the same redis. Redis failures let requests through.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
	prefix string
	logger *observability.Logger
}

func NewRedisLimiter(client *redis.Client, prefix string, logger *observability.Logger) *RedisLimiter {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = observability.NewNop()
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
		prefix: prefix,
		logger: logger,
	}
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	allowed, err := l.script.Run(ctx, l.client, []string{l.prefix + ":ratelimit:" + key}, ttl, limit).Int64()
	if err != nil {
		l.logger.Warn("redis rate limit check failed", "key", key, "err", err)
		return true
	}
	return allowed == 1
}
