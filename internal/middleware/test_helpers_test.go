package middleware

import (
	"context"
	"testing"

	"ariavt-server/internal/config"
	"ariavt-server/internal/model"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	"ariavt-server/internal/platform/service"
	"ariavt-server/internal/testutils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*service.AppService, *gorm.DB) {
	t.Helper()
	gdb := testutils.SetupDB(t)
	appService := service.NewAppService(settingsrepo.NewSettingRepository(gdb))
	appService.ClearCache()
	return appService, gdb
}

func saveSetting(t *testing.T, gdb *gorm.DB, appService *service.AppService, key, value string) {
	t.Helper()
	require.NoError(t, gdb.Save(&model.Setting{Key: key, Value: value}).Error)
	appService.ClearCache()
}

func useTestJWTSecret(t *testing.T) {
	t.Helper()
	prev := config.Get()
	cfg := prev
	cfg.JWT.Secret = "test-secret"
	config.Set(cfg)
	t.Cleanup(func() { config.Set(prev) })
}

func resetStatusCache() {
	statusCache.Range(func(key, value any) bool {
		statusCache.Delete(key)
		return true
	})
}

// fakeStatusChecker 按 id 返回预设状态并记录查询次数。
type fakeStatusChecker struct {
	disabled map[uint]bool
	calls    int
}

func (f *fakeStatusChecker) IsDisabled(_ context.Context, id uint) (bool, error) {
	f.calls++
	disabled, ok := f.disabled[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	return disabled, nil
}
