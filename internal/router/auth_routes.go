package router

import (
	authhandler "ariavt-server/internal/modules/auth/handler"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(r gin.IRoutes, authLimiter gin.HandlerFunc, h *authhandler.Handler) {
	r.POST("/token", authLimiter, h.Login)
	r.GET("/verify-token", authLimiter, h.VerifyToken)
}
