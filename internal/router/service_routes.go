package router

import (
	"ariavt-server/internal/consts"
	"ariavt-server/internal/middleware"
	analysishandler "ariavt-server/internal/modules/analysis/handler"
	"ariavt-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func registerServiceRoutes(authed *gin.RouterGroup, h *analysishandler.Handler, appService *service.AppService) {
	services := authed.Group("/services")

	// 分析限流：每次未命中缓存的请求都会调用一次外部服务
	analysisLimiter := middleware.RateLimitMiddleware(appService, consts.ConfigRateLimitAnalysisRPS, consts.ConfigRateLimitAnalysisBurst)

	services.GET("/", h.ListServices)
	services.GET("/:id", analysisLimiter, h.GetService)
	services.POST("/", h.CreateService)
	services.PUT("/:id", h.UpdateService)
	services.DELETE("/:id", h.DeleteService)
	services.DELETE("/:id/results/:image_id", h.DiscardResult)
}
