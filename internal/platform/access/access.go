package access

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/consts"

	"github.com/gin-gonic/gin"
)

// gin 上下文中的身份键，由 JWT 中间件写入
const (
	ContextUserID   = "id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// Actor 发起请求的已认证用户
type Actor struct {
	ID       uint
	Username string
	Role     consts.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == consts.RoleAdmin
}

// Authorize 只有资源所有者或管理员可以继续。
func Authorize(actor Actor, ownerID uint) error {
	if actor.ID != 0 && actor.ID == ownerID {
		return nil
	}
	if actor.IsAdmin() {
		return nil
	}
	return common.NewUnauthorizedError("无权操作该资源")
}

// RequireAdmin 管理类操作只看角色，不看归属。
func RequireAdmin(actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	return common.NewUnauthorizedError("需要管理员权限")
}

func SetActor(c *gin.Context, actor Actor) {
	c.Set(ContextUserID, actor.ID)
	c.Set(ContextUsername, actor.Username)
	c.Set(ContextRole, actor.Role)
}

// ActorFromContext 从上下文还原 Actor，未经过认证中间件时返回 false。
func ActorFromContext(c *gin.Context) (Actor, bool) {
	rawID, ok := c.Get(ContextUserID)
	if !ok {
		return Actor{}, false
	}
	id, ok := rawID.(uint)
	if !ok || id == 0 {
		return Actor{}, false
	}
	actor := Actor{ID: id, Username: c.GetString(ContextUsername)}
	if role, ok := c.Get(ContextRole); ok {
		actor.Role, _ = role.(consts.Role)
	}
	return actor, true
}
