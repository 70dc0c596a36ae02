package handler

import (
	"testing"

	"ariavt-server/internal/config"
	authservice "ariavt-server/internal/modules/auth/service"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	userrepo "ariavt-server/internal/modules/user/repo"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := config.Get()
	config.Set(config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpirationMinutes: 5}})
	t.Cleanup(func() { config.Set(prev) })

	gdb := testutils.SetupDB(t)
	appService := platformservice.NewAppService(settingsrepo.NewSettingRepository(gdb))
	h := New(authservice.New(appService, userrepo.NewUserRepository(gdb)))

	r := gin.New()
	r.POST("/token", h.Login)
	r.GET("/verify-token", h.VerifyToken)
	return r, gdb
}
