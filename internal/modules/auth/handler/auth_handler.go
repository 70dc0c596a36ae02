package handler

import (
	"ariavt-server/internal/common/httpx"
	moduledto "ariavt-server/internal/modules/auth/dto"
	authservice "ariavt-server/internal/modules/auth/service"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Login 按 Content-Type 绑定表单或 JSON。
func (h *Handler) Login(c *gin.Context) {
	var req moduledto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, moduledto.TokenResponse{
		AccessToken: token,
		TokenType:   authservice.TokenType,
	})
}

// VerifyToken 令牌来自 Authorization 头或 token 查询参数。
func (h *Handler) VerifyToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "需要认证才能访问"})
		return
	}

	user, err := h.authService.VerifyToken(c.Request.Context(), token)
	if err != nil {
		httpx.WriteServiceError(c, err, "验证失败")
		return
	}
	c.JSON(http.StatusOK, moduledto.VerifyTokenResponse{Token: token, User: user})
}
