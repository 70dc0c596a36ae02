package repo

import (
	"ariavt-server/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultRepository struct {
	db *gorm.DB
}

func (r *ResultRepository) FindByPair(ctx context.Context, imageID, serviceID uint) (*model.Result, error) {
	var result model.Result
	if err := r.db.WithContext(ctx).
		Where("image_id = ? AND service_id = ?", imageID, serviceID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultRepository) Upsert(ctx context.Context, result *model.Result) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result.UpdatedAt = time.Now()
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "image_id"}, {Name: "service_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "path", "content_type", "updated_at"}),
		}).Create(result).Error; err != nil {
			return err
		}
		// 冲突更新时部分驱动不回填主键，重新读一次保证返回的是库里的那一行
		var stored model.Result
		if err := tx.Where("image_id = ? AND service_id = ?", result.ImageID, result.ServiceID).First(&stored).Error; err != nil {
			return err
		}
		*result = stored
		return nil
	})
}

func (r *ResultRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Result{}, id).Error
}

func (r *ResultRepository) ListByImage(ctx context.Context, imageID uint) ([]model.Result, error) {
	var results []model.Result
	if err := r.db.WithContext(ctx).Where("image_id = ?", imageID).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ResultRepository) CountByService(ctx context.Context, serviceID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Result{}).Where("service_id = ?", serviceID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ResultRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Result{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
