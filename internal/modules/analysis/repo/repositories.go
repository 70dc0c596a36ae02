package repo

import "gorm.io/gorm"

func NewServiceRepository(db *gorm.DB) ServiceStore {
	return &ServiceRepository{db: db}
}

func NewResultRepository(db *gorm.DB) ResultStore {
	return &ResultRepository{db: db}
}
