package router

import (
	"ariavt-server/internal/config"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/logging"
	"ariavt-server/internal/middleware"
	analysishandler "ariavt-server/internal/modules/analysis/handler"
	"ariavt-server/internal/modules"
	"ariavt-server/internal/platform/service"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type Router struct {
	modules *modules.AppModules
	service *service.AppService
}

func NewRouter(appModules *modules.AppModules, appService *service.AppService) *Router {
	return &Router{
		modules: appModules,
		service: appService,
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id", analysishandler.CacheHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	}
	return cors.New(cfg)
}

func (rt *Router) Init(r *gin.Engine) {
	r.Use(logging.RequestLogger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(config.Get().Server.CORSOrigins))
	// 原始图片已是压缩格式，不再 gzip
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`^/images/\d+/?$`})))
	// 注册全局安全标头中间件
	r.Use(middleware.SecurityHeaders())
	// 应用请求体大小限制中间件
	r.Use(middleware.BodyLimitMiddleware(rt.service))

	// 认证限流：读取配置（在多个域路由中复用同一个实例，保持行为一致）
	authLimiter := middleware.RateLimitMiddleware(rt.service, consts.ConfigRateLimitAuthRPS, consts.ConfigRateLimitAuthBurst)

	authed := r.Group("")
	authed.Use(middleware.JWTAuth())
	authed.Use(middleware.UserStatusCheck(rt.modules.User.Service))

	registerPublicRoutes(r, rt.modules.System.Handler)
	registerAuthRoutes(r, authLimiter, rt.modules.Auth.Handler)
	registerUserRoutes(authed, rt.modules.User.Handler)
	registerImageRoutes(authed, rt.modules.Image.Handler, rt.service)
	registerServiceRoutes(authed, rt.modules.Analysis.Handler, rt.service)
	registerPatientRoutes(authed, rt.modules.Patient.Handler)
	registerAdminRoutes(authed, rt.modules.System.Handler, rt.modules.Settings.Handler)
}
