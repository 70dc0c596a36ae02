package auth

import (
	"ariavt-server/internal/modules/auth/handler"
	"ariavt-server/internal/modules/auth/repo"
	"ariavt-server/internal/modules/auth/service"
	platformservice "ariavt-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(appService *platformservice.AppService, userStore repo.UserStore) *Module {
	moduleService := service.New(appService, userStore)

	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
