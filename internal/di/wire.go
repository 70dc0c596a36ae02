//go:build wireinject
// +build wireinject

package di

import (
	"ariavt-server/internal/config"
	"ariavt-server/internal/modules"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	"ariavt-server/internal/platform/service"
	"ariavt-server/internal/router"
	"context"

	"github.com/google/wire"
	"gorm.io/gorm"
)

func InitializeApplication(ctx context.Context, gormDB *gorm.DB, cfg config.Config) (*Application, func(), error) {
	wire.Build(
		settingsrepo.NewSettingRepository,
		provideStores,
		provideStorage,
		provideSelectionStore,
		service.NewAppService,
		modules.New,
		router.NewRouter,
		NewApplication,
	)
	return nil, nil, nil
}
