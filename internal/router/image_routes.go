package router

import (
	"ariavt-server/internal/consts"
	"ariavt-server/internal/middleware"
	imagehandler "ariavt-server/internal/modules/image/handler"
	"ariavt-server/internal/platform/service"

	"github.com/gin-gonic/gin"
)

func registerImageRoutes(authed *gin.RouterGroup, h *imagehandler.Handler, appService *service.AppService) {
	images := authed.Group("/images")

	// 上传限流：读取配置
	uploadLimiter := middleware.RateLimitMiddleware(appService, consts.ConfigRateLimitUploadRPS, consts.ConfigRateLimitUploadBurst)

	images.POST("/", middleware.UploadBodyLimitMiddleware(appService), uploadLimiter, h.UploadImage)
	images.POST("/batch-upload", middleware.BatchUploadBodyLimitMiddleware(appService), uploadLimiter, h.BatchUploadImages)
	images.GET("/", h.ListImages)

	images.POST("/selection", h.CreateSelection)
	images.DELETE("/selection/:token", h.DeleteSelection)

	images.GET("/:id", h.GetImageFile)
	images.GET("/:id/info", h.GetImageInfo)
	images.GET("/:id/base64", h.GetImageBase64)
	images.PATCH("/:id", h.UpdateImage)
	images.DELETE("/:id", h.DeleteImage)
}
