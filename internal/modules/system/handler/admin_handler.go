package handler

import (
	"ariavt-server/internal/common/httpx"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetServerStats 获取服务器概览统计信息
func (h *Handler) GetServerStats(c *gin.Context) {
	stats, err := h.systemService.GetServerStats(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "统计数据失败")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// Ping 存活探测。
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ping": true})
}
