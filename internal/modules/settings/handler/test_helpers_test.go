package handler

import (
	"testing"

	modulerepo "ariavt-server/internal/modules/settings/repo"
	settingsservice "ariavt-server/internal/modules/settings/service"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/testutils"

	"github.com/gin-gonic/gin"
)

func setupTestHandler(t *testing.T) *Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutils.SetupDB(t)
	settingStore := modulerepo.NewSettingRepository(gdb)
	return New(settingsservice.New(platformservice.NewAppService(settingStore), settingStore))
}
