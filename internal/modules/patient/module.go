package patient

import (
	"ariavt-server/internal/modules/patient/handler"
	"ariavt-server/internal/modules/patient/repo"
	"ariavt-server/internal/modules/patient/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func New(patientStore repo.PatientStore) *Module {
	moduleService := service.New(patientStore)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
