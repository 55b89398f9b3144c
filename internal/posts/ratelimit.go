package posts

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCreateLimiter enforces the per-user create limit with a fixed
// window counter in Redis (INCR + EXPIRE on first hit).
type RedisCreateLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewRedisCreateLimiter(client *redis.Client, max int64, window time.Duration) *RedisCreateLimiter {
	return &RedisCreateLimiter{client: client, max: max, window: window}
}

// Allow reports whether userID may create another post right now.
func (l *RedisCreateLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	key := fmt.Sprintf("ratelimit:create:%s", userID)

	// The key is created with its TTL before it ever counts anything,
	// so no failure can leave a counter that outlives its window.
	if err := l.client.SetNX(ctx, key, 0, l.window).Err(); err != nil {
		return false, err
	}

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return n <= l.max, nil
}
