package dto

import "ariavt-server/internal/model"

type CreatePatientRequest struct {
	NationalID string `json:"national_id" binding:"required"`
}

type PatientListResponse struct {
	List     []model.Patient `json:"list"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
