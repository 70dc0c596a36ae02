package repo

import (
	"ariavt-server/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

type SystemRepository struct {
	db *gorm.DB
}

func (r *SystemRepository) CountTables(ctx context.Context) (TableCounts, error) {
	var counts TableCounts
	targets := []struct {
		model any
		dest  *int64
	}{
		{&model.User{}, &counts.Users},
		{&model.Image{}, &counts.Images},
		{&model.Patient{}, &counts.Patients},
		{&model.Service{}, &counts.Services},
		{&model.Result{}, &counts.Results},
	}
	for _, target := range targets {
		if err := r.db.WithContext(ctx).Model(target.model).Count(target.dest).Error; err != nil {
			return TableCounts{}, fmt.Errorf("count %T: %w", target.model, err)
		}
	}
	return counts, nil
}

func (r *SystemRepository) SumImageSize(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Image{}).Select("COALESCE(SUM(size), 0)").Scan(&total).Error
	return total, err
}
