package repo

import (
	"ariavt-server/internal/model"
	"context"
)

type ListImagesParams struct {
	UserID *uint
	IDs    []uint
	Offset int
	Limit  int
}

type ImageStore interface {
	Create(ctx context.Context, image *model.Image) error
	FindByID(ctx context.Context, id uint) (*model.Image, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Image, error)
	ListByUserID(ctx context.Context, userID uint) ([]model.Image, error)
	ListImages(ctx context.Context, params ListImagesParams) ([]model.Image, int64, error)
	Save(ctx context.Context, image *model.Image) error
	Delete(ctx context.Context, id uint) error
	DeleteByIDs(ctx context.Context, ids []uint) error
	PatientExists(ctx context.Context, id uint) (bool, error)
	CountAll(ctx context.Context) (int64, error)
	SumAllSize(ctx context.Context) (int64, error)
}
