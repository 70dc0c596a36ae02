package middleware

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试内容：验证禁用参数下 Redis 限流直接放行。
func TestAllowByRedisRateLimit_DisabledReturnsOK(t *testing.T) {
	ok, err := allowByRedisRateLimit(nil, "rate", "rps", "burst", "1.2.3.4", 0, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = allowByRedisRateLimit(nil, "rate", "rps", "burst", "1.2.3.4", 1, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

// 测试内容：验证 Redis 不可用时速率限流返回错误。
func TestAllowByRedisRateLimit_UnavailableRedisReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer func() { _ = client.Close() }()

	ok, err := allowByRedisRateLimit(client, "rate", "rps", "burst", "1.2.3.4", 1, 1)
	assert.Error(t, err)
	assert.False(t, ok)
}
