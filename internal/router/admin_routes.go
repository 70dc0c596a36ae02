package router

import (
	"ariavt-server/internal/middleware"
	settingshandler "ariavt-server/internal/modules/settings/handler"
	systemhandler "ariavt-server/internal/modules/system/handler"

	"github.com/gin-gonic/gin"
)

func registerAdminRoutes(authed *gin.RouterGroup, systemHandler *systemhandler.Handler, settingsHandler *settingshandler.Handler) {
	adminGroup := authed.Group("/admin")
	adminGroup.Use(middleware.AdminCheck())

	adminGroup.GET("/stats", systemHandler.GetServerStats)

	adminGroup.GET("/settings", settingsHandler.GetSettings)
	adminGroup.PATCH("/settings", settingsHandler.UpdateSettings)
}
