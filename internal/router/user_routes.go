package router

import (
	userhandler "ariavt-server/internal/modules/user/handler"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(authed *gin.RouterGroup, h *userhandler.Handler) {
	users := authed.Group("/users")

	users.GET("/me", h.GetMe)
	users.POST("/", h.CreateUser)
	users.GET("/", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
}
