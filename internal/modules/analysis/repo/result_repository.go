package repo

import (
	"ariavt-server/internal/model"
	"context"
)

type ResultStore interface {
	FindByPair(ctx context.Context, imageID, serviceID uint) (*model.Result, error)
	// Upsert 依赖 (image_id, service_id) 唯一索引，同一组合只保留最新一行。
	Upsert(ctx context.Context, result *model.Result) error
	Delete(ctx context.Context, id uint) error
	ListByImage(ctx context.Context, imageID uint) ([]model.Result, error)
	CountByService(ctx context.Context, serviceID uint) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}
