package system

import (
	"ariavt-server/internal/modules/system/handler"
	"ariavt-server/internal/modules/system/repo"
	"ariavt-server/internal/modules/system/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(systemStore repo.SystemStore) *Module {
	moduleService := service.New(systemStore)
	moduleHandler := handler.New(moduleService)

	return &Module{
		Service: moduleService,
		Handler: moduleHandler,
	}
}
