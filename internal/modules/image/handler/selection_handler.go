package handler

import (
	"ariavt-server/internal/common/httpx"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateSelection 请求体为图片 id 数组
func (h *Handler) CreateSelection(c *gin.Context) {
	if _, ok := httpx.CurrentActor(c); !ok {
		return
	}
	var ids []uint
	if err := c.ShouldBindJSON(&ids); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	token, err := h.imageService.CreateSelection(c.Request.Context(), ids)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建选择失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"selection": token})
}

func (h *Handler) DeleteSelection(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}

	removed, err := h.imageService.DeleteSelection(c.Request.Context(), actor, c.Param("token"))
	if err != nil {
		httpx.WriteServiceError(c, err, "删除失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
