package settings

import (
	"ariavt-server/internal/modules/settings/handler"
	"ariavt-server/internal/modules/settings/repo"
	"ariavt-server/internal/modules/settings/service"
	platformservice "ariavt-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, settingStore repo.SettingStore) *Module {
	moduleService := service.New(appService, settingStore)

	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
