package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis 多实例部署时共享 selection，依赖 GETDEL 保证只消费一次。
type Redis struct {
	client redis.Cmdable
	ttl    time.Duration
	keyFn  func(token string) string
}

func NewRedis(client redis.Cmdable, ttl time.Duration, keyFn func(token string) string) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if keyFn == nil {
		keyFn = func(token string) string { return "selection:" + token }
	}
	return &Redis{client: client, ttl: ttl, keyFn: keyFn}
}

func (r *Redis) Create(ctx context.Context, ids []uint) (string, error) {
	token := Token(ids)
	if err := r.client.Set(ctx, r.keyFn(token), joinIDs(ids), r.ttl).Err(); err != nil {
		return "", fmt.Errorf("store selection: %w", err)
	}
	return token, nil
}

func (r *Redis) Consume(ctx context.Context, token string) ([]uint, bool, error) {
	raw, err := r.client.GetDel(ctx, r.keyFn(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("consume selection: %w", err)
	}
	ids, err := parseIDs(raw)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt selection %s: %w", token, err)
	}
	return ids, true, nil
}
