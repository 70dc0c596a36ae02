package di

import (
	"ariavt-server/internal/config"
	analysisrepo "ariavt-server/internal/modules/analysis/repo"
	"ariavt-server/internal/modules"
	imagerepo "ariavt-server/internal/modules/image/repo"
	patientrepo "ariavt-server/internal/modules/patient/repo"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	systemrepo "ariavt-server/internal/modules/system/repo"
	userrepo "ariavt-server/internal/modules/user/repo"
	"ariavt-server/internal/platform/selection"
	"ariavt-server/internal/platform/service"
	"ariavt-server/internal/platform/storage"
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func provideStores(gormDB *gorm.DB, settingStore settingsrepo.SettingStore) modules.Stores {
	return modules.Stores{
		Users:    userrepo.NewUserRepository(gormDB),
		Images:   imagerepo.NewImageRepository(gormDB),
		Services: analysisrepo.NewServiceRepository(gormDB),
		Results:  analysisrepo.NewResultRepository(gormDB),
		Patients: patientrepo.NewPatientRepository(gormDB),
		Settings: settingStore,
		System:   systemrepo.NewSystemRepository(gormDB),
	}
}

func provideStorage(ctx context.Context, cfg config.Config) (storage.Storage, error) {
	files, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return files, nil
}

// provideSelectionStore Redis 可用时多实例共享选择集，否则使用进程内存。
func provideSelectionStore(cfg config.Config) (selection.Store, func()) {
	ttl := time.Duration(cfg.Selection.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = selection.DefaultTTL
	}

	if client := service.GetRedisClient(); client != nil {
		log.Info("selection store: redis")
		return selection.NewRedis(client, ttl, func(token string) string {
			return service.RedisKey("selection", token)
		}), func() {}
	}

	memory := selection.NewMemory(ttl)
	return memory, func() { _ = memory.Close() }
}
