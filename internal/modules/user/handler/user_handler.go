package handler

import (
	"ariavt-server/internal/common/httpx"
	"ariavt-server/internal/middleware"
	moduledto "ariavt-server/internal/modules/user/dto"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetMe 获取当前登录用户
func (h *Handler) GetMe(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	user, err := h.userService.Me(c.Request.Context(), actor)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户信息失败")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) CreateUser(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	var req moduledto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), actor, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建用户失败")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	res, err := h.userService.List(c.Request.Context(), actor, page, pageSize)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户列表失败")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetUser(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), actor, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取用户失败")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}
	var req moduledto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数格式错误"})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新用户失败")
		return
	}
	if req.Disabled != nil {
		middleware.ClearUserStatusCache(user.ID)
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), actor, id); err != nil {
		httpx.WriteServiceError(c, err, "删除用户失败")
		return
	}
	middleware.ClearUserStatusCache(id)
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
