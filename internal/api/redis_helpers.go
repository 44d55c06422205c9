package api

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// loginCounter 抽象登录限流所需的 Redis 子集，便于在测试中替换。
type loginCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// incrWithTTL 自增计数键并在首次写入时设置窗口过期，返回当前计数。
// 登录限流按 IP+邮箱+小时分键，窗口随首次请求开始滚动。
func incrWithTTL(ctx context.Context, client loginCounter, key string, ttl time.Duration) (int64, error) {
	count, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		_ = client.Expire(ctx, key, ttl).Err()
	}
	return count, nil
}
