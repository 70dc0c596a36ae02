package httpx

import (
	"ariavt-server/internal/platform/access"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PathID 解析路径中的正整数 id，失败时直接写 400。
func PathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " 参数错误"})
		return 0, false
	}
	return uint(id), true
}

// CurrentActor 读取 JWT 中间件写入的身份，缺失时直接写 401。
func CurrentActor(c *gin.Context) (access.Actor, bool) {
	actor, ok := access.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
		return access.Actor{}, false
	}
	return actor, true
}
