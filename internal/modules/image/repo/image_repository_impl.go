package repo

import (
	"ariavt-server/internal/model"
	"context"

	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func (r *ImageRepository) Create(ctx context.Context, image *model.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *ImageRepository) FindByID(ctx context.Context, id uint) (*model.Image, error) {
	var image model.Image
	if err := r.db.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ImageRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Image, error) {
	var images []model.Image
	if len(ids) == 0 {
		return images, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Image, error) {
	var images []model.Image
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) ListImages(ctx context.Context, params ListImagesParams) ([]model.Image, int64, error) {
	var images []model.Image
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Image{})
	if params.UserID != nil {
		query = query.Where("images.user_id = ?", *params.UserID)
	}
	if len(params.IDs) > 0 {
		query = query.Where("images.id IN ?", params.IDs)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("images.id desc").Offset(params.Offset).Limit(params.Limit).Find(&images).Error; err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

func (r *ImageRepository) Save(ctx context.Context, image *model.Image) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *ImageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Image{}, id).Error
}

func (r *ImageRepository) DeleteByIDs(ctx context.Context, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Where("id IN ?", ids).Delete(&model.Image{}).Error
	})
}

func (r *ImageRepository) PatientExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Patient{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ImageRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Image{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ImageRepository) SumAllSize(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Image{}).Select("COALESCE(SUM(size), 0)").Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
