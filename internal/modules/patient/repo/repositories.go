package repo

import "gorm.io/gorm"

func NewPatientRepository(db *gorm.DB) PatientStore {
	return &PatientRepository{db: db}
}
