package service

import (
	"ariavt-server/internal/modules/image/repo"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/platform/selection"
	"ariavt-server/internal/platform/storage"
	"context"

	log "github.com/sirupsen/logrus"
)

// ResultCleaner 删除图片前清理其全部分析结果。
type ResultCleaner interface {
	RemoveByImage(ctx context.Context, imageID uint) error
}

type Service struct {
	*platformservice.AppService
	imageStore repo.ImageStore
	files      storage.Storage
	results    ResultCleaner
	selections selection.Store
}

func New(
	appService *platformservice.AppService,
	imageStore repo.ImageStore,
	files storage.Storage,
	results ResultCleaner,
	selections selection.Store,
) *Service {
	return &Service{
		AppService: appService,
		imageStore: imageStore,
		files:      files,
		results:    results,
		selections: selections,
	}
}

// discard 尽力删除文件，失败只记日志。
func (s *Service) discard(ctx context.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to remove image file")
	}
}
