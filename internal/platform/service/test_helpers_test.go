package service

import (
	"testing"

	settingsrepo "ariavt-server/internal/modules/settings/repo"
	"ariavt-server/internal/testutils"

	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*AppService, *gorm.DB) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	svc := NewAppService(settingsrepo.NewSettingRepository(gdb))
	return svc, gdb
}
