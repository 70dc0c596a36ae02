package middleware

import (
	"ariavt-server/internal/consts"
	"ariavt-server/internal/platform/service"
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type IPRateLimiter struct {
	ips  sync.Map
	mu   sync.Mutex
	r    rate.Limit
	b    int
	stop chan struct{}
	once sync.Once
}

type client struct {
	limiter  *rate.Limiter
	lastSeen touchTime
}

// touchTime 最近访问时间，请求协程写、清理协程读。
type touchTime struct {
	mu sync.Mutex
	t  time.Time
}

func (a *touchTime) Store(t time.Time) {
	a.mu.Lock()
	a.t = t
	a.mu.Unlock()
}

func (a *touchTime) Load() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.t
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	i := &IPRateLimiter{
		r:    r,
		b:    b,
		stop: make(chan struct{}),
	}

	go i.cleanupLoop(time.Minute)

	return i
}

// Stop 结束后台清理协程。
func (i *IPRateLimiter) Stop() {
	i.once.Do(func() { close(i.stop) })
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen.Store(time.Now())
		return c.limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	// Double check
	if v, ok := i.ips.Load(ip); ok {
		c := v.(*client)
		c.lastSeen.Store(time.Now())
		return c.limiter
	}

	limiter := rate.NewLimiter(i.r, i.b)
	entry := &client{limiter: limiter}
	entry.lastSeen.Store(time.Now())
	i.ips.Store(ip, entry)

	return limiter
}

func (i *IPRateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-i.stop:
			return
		case <-ticker.C:
			i.ips.Range(func(key, value any) bool {
				if time.Since(value.(*client).lastSeen.Load()) > 3*time.Minute {
					i.ips.Delete(key)
				}
				return true
			})
		}
	}
}

// allowByRedisRateLimit 以 burst 为容量、burst/rps 为窗口的固定窗口计数，多实例共享。
func allowByRedisRateLimit(client *redis.Client, scope, rpsKey, burstKey, ip string, rps float64, burst int) (bool, error) {
	if rps <= 0 || burst <= 0 {
		return true, nil
	}
	window := time.Duration(math.Ceil(float64(burst)/rps)) * time.Second
	if window < time.Second {
		window = time.Second
	}
	slot := strconv.FormatInt(time.Now().UnixNano()/int64(window), 10)
	key := service.RedisKey(scope, rpsKey, burstKey, ip, slot)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	pipe := client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis rate limit: %w", err)
	}
	return incr.Val() <= int64(burst), nil
}

// RateLimitMiddleware 创建一个动态限流中间件
func RateLimitMiddleware(appService *service.AppService, rpsKey string, burstKey string) gin.HandlerFunc {
	// 每个路由组（auth/upload/analysis）共用一个 IPRateLimiter 实例
	var limiter *IPRateLimiter
	var once sync.Once

	return func(c *gin.Context) {
		// 检查总开关
		if !appService.GetBool(consts.ConfigRateLimitEnabled) {
			c.Next()
			return
		}

		currentRPS := appService.GetFloat64(rpsKey)
		currentBurst := appService.GetInt(burstKey)
		ip := c.ClientIP()

		if redisClient := service.GetRedisClient(); redisClient != nil {
			allowed, err := allowByRedisRateLimit(redisClient, "rate", rpsKey, burstKey, ip, currentRPS, currentBurst)
			if err == nil {
				if !allowed {
					c.JSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
					c.Abort()
					return
				}
				c.Next()
				return
			}
			log.WithError(err).Warn("rate limit: redis unavailable, falling back to local limiter")
		}

		once.Do(func() {
			limiter = NewIPRateLimiter(rate.Limit(currentRPS), currentBurst)
		})

		l := limiter.getLimiter(ip)

		// 配置变更时动态更新 limit 和 burst
		if l.Limit() != rate.Limit(currentRPS) {
			l.SetLimit(rate.Limit(currentRPS))
		}
		if l.Burst() != currentBurst {
			l.SetBurst(currentBurst)
		}

		if !l.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "请求过于频繁，请稍后再试"})
			c.Abort()
			return
		}
		c.Next()
	}
}
