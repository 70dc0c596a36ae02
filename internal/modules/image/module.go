package image

import (
	"ariavt-server/internal/modules/image/handler"
	"ariavt-server/internal/modules/image/repo"
	"ariavt-server/internal/modules/image/service"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/platform/selection"
	"ariavt-server/internal/platform/storage"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(
	appService *platformservice.AppService,
	imageStore repo.ImageStore,
	files storage.Storage,
	results service.ResultCleaner,
	selections selection.Store,
) *Module {
	moduleService := service.New(appService, imageStore, files, results, selections)

	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
