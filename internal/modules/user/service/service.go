package service

import (
	"ariavt-server/internal/modules/user/repo"
	platformservice "ariavt-server/internal/platform/service"
	"context"
)

// ImageService 删除用户前清理其图片。
type ImageService interface {
	PurgeUser(ctx context.Context, userID uint) error
}

type Service struct {
	*platformservice.AppService
	userStore    repo.UserStore
	imageService ImageService
}

func New(appService *platformservice.AppService, userStore repo.UserStore) *Service {
	return &Service{
		AppService: appService,
		userStore:  userStore,
	}
}

func (s *Service) SetImageService(imageService ImageService) {
	s.imageService = imageService
}
