package repo

import (
	"ariavt-server/internal/model"
	"context"
)

type PatientStore interface {
	Create(ctx context.Context, patient *model.Patient) error
	FindByID(ctx context.Context, id uint) (*model.Patient, error)
	List(ctx context.Context, offset int, limit int) ([]model.Patient, int64, error)
	Delete(ctx context.Context, id uint) error
	CountAll(ctx context.Context) (int64, error)
}
