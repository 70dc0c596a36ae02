package repo

import (
	"ariavt-server/internal/model"
	"context"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func (r *ServiceRepository) Create(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uint) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) FindByName(ctx context.Context, name string) (*model.Service, error) {
	var service model.Service
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	if err := r.db.WithContext(ctx).Order("id asc").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *ServiceRepository) Save(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).Save(service).Error
}

func (r *ServiceRepository) DeleteWithResults(ctx context.Context, id uint) ([]model.Result, error) {
	var removed []model.Result
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Find(&removed).Error; err != nil {
			return err
		}
		if err := tx.Where("service_id = ?", id).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Service{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (r *ServiceRepository) FindImageByID(ctx context.Context, id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}
