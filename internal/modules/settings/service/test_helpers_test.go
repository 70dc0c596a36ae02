package service

import (
	"testing"

	modulerepo "ariavt-server/internal/modules/settings/repo"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/testutils"

	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	settingStore := modulerepo.NewSettingRepository(gdb)
	return New(platformservice.NewAppService(settingStore), settingStore), gdb
}
