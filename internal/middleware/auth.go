package middleware

import (
	"ariavt-server/internal/platform/access"
	"ariavt-server/internal/platform/service"
	"ariavt-server/internal/utils"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// statusCache 缓存用户禁用状态，减少数据库查询
	// Key: userID (uint), Value: cachedStatus
	statusCache sync.Map
)

const statusCacheTTL = 1 * time.Minute

type cachedStatus struct {
	Disabled  bool
	ExpiresAt time.Time
}

// UserStatusChecker 查询用户是否被停用，用户不存在时返回 gorm.ErrRecordNotFound。
type UserStatusChecker interface {
	IsDisabled(ctx context.Context, id uint) (bool, error)
}

func statusRedisKey(userID uint) string {
	return service.RedisKey("auth", "user_status", strconv.FormatUint(uint64(userID), 10))
}

// ClearUserStatusCache 清除指定用户的状态缓存
func ClearUserStatusCache(userID uint) {
	statusCache.Delete(userID)

	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = redisClient.Del(ctx, statusRedisKey(userID)).Err()
	}
}

// BearerToken 从 Authorization 头取出令牌，格式不符时返回空串。
func BearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "需要认证才能访问"})
			c.Abort()
			return
		}

		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 格式错误"})
			c.Abort()
			return
		}

		claims, err := utils.ParseLoginToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token 无效或已过期"})
			c.Abort()
			return
		}

		access.SetActor(c, access.Actor{ID: claims.ID, Username: claims.Username, Role: claims.Role})
		c.Next()
	}
}

func lookupCachedStatus(ctx context.Context, uid uint) (bool, bool) {
	// 优先从 Redis 读取
	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()

		raw, err := redisClient.Get(ctx, statusRedisKey(uid)).Result()
		if err == nil {
			if disabled, parseErr := strconv.ParseBool(raw); parseErr == nil {
				statusCache.Store(uid, cachedStatus{Disabled: disabled, ExpiresAt: time.Now().Add(statusCacheTTL)})
				return disabled, true
			}
		}
	}

	// Redis 未命中或不可用时，回退本地内存缓存
	if val, ok := statusCache.Load(uid); ok {
		if cached, typeOk := val.(cachedStatus); typeOk {
			if time.Now().Before(cached.ExpiresAt) {
				return cached.Disabled, true
			}
			statusCache.Delete(uid)
		}
	}
	return false, false
}

func storeStatus(ctx context.Context, uid uint, disabled bool) {
	statusCache.Store(uid, cachedStatus{Disabled: disabled, ExpiresAt: time.Now().Add(statusCacheTTL)})

	if redisClient := service.GetRedisClient(); redisClient != nil {
		ctx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := redisClient.Set(ctx, statusRedisKey(uid), strconv.FormatBool(disabled), statusCacheTTL).Err(); err != nil {
			log.WithError(err).Warn("user status cache: redis set failed")
		}
	}
}

// UserStatusCheck 拒绝已停用或已删除的账号
func UserStatusCheck(checker UserStatusChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := access.ActorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		disabled, found := lookupCachedStatus(ctx, actor.ID)
		if !found {
			var err error
			disabled, err = checker.IsDisabled(ctx, actor.ID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "用户不存在"})
				c.Abort()
				return
			}
			if err != nil {
				log.WithError(err).WithField("user_id", actor.ID).Error("user status check failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
				c.Abort()
				return
			}
			storeStatus(ctx, actor.ID, disabled)
		}

		if disabled {
			c.JSON(http.StatusForbidden, gin.H{"error": "账号已停用"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func AdminCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := access.ActorFromContext(c)
		if !ok || !actor.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "需要管理员权限才能访问"})
			c.Abort()
			return
		}
		c.Next()
	}
}
