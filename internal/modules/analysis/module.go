package analysis

import (
	"ariavt-server/internal/modules/analysis/handler"
	"ariavt-server/internal/modules/analysis/invoker"
	"ariavt-server/internal/modules/analysis/repo"
	"ariavt-server/internal/modules/analysis/service"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/platform/storage"
)

type Module struct {
	Results      *service.ResultStore
	Registry     *service.Registry
	Orchestrator *service.Orchestrator
	Handler      *handler.Handler
}

func New(
	appService *platformservice.AppService,
	serviceStore repo.ServiceStore,
	resultStore repo.ResultStore,
	files storage.Storage,
) *Module {
	results := service.NewResultStore(resultStore, files)
	registry := service.NewRegistry(serviceStore, results)
	orchestrator := service.NewOrchestrator(serviceStore, results, files, invoker.New(appService))

	return &Module{
		Results:      results,
		Registry:     registry,
		Orchestrator: orchestrator,
		Handler:      handler.New(registry, orchestrator),
	}
}
