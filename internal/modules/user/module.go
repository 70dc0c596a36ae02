package user

import (
	"ariavt-server/internal/modules/user/handler"
	"ariavt-server/internal/modules/user/repo"
	"ariavt-server/internal/modules/user/service"
	platformservice "ariavt-server/internal/platform/service"
)

type Module struct {
	Service *service.Service
	Handler *handler.Handler
}

func NewService(appService *platformservice.AppService, userStore repo.UserStore) *service.Service {
	return service.New(appService, userStore)
}

// New 图片模块在用户模块之后构建，通过 SetImageService 回填。
func New(moduleService *service.Service, imageService service.ImageService) *Module {
	moduleService.SetImageService(imageService)
	return &Module{
		Service: moduleService,
		Handler: handler.New(moduleService),
	}
}
