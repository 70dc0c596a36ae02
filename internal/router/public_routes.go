package router

import (
	systemhandler "ariavt-server/internal/modules/system/handler"

	"github.com/gin-gonic/gin"
)

func registerPublicRoutes(r gin.IRoutes, h *systemhandler.Handler) {
	r.GET("/ping", h.Ping)
}
