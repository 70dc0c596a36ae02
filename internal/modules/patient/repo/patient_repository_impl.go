package repo

import (
	"ariavt-server/internal/model"
	"context"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func (r *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *PatientRepository) FindByID(ctx context.Context, id uint) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) List(ctx context.Context, offset int, limit int) ([]model.Patient, int64, error) {
	var patients []model.Patient
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Patient{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("id asc").Offset(offset).Limit(limit).Find(&patients).Error; err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// Delete 图片上的关联由外键置空。
func (r *PatientRepository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&model.Patient{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PatientRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Patient{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
