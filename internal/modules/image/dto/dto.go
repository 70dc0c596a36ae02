package dto

import "ariavt-server/internal/model"

type PaginationRequest struct {
	Page     int
	PageSize int
}

type ImageListRequest struct {
	PaginationRequest
	IDs    []uint
	UserID *uint
}

type ImageListResponse struct {
	List     []model.Image `json:"list"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// UploadMeta 单图上传时附带的表单字段
type UploadMeta struct {
	Title     string
	Text      string
	PatientID *uint
}

// UpdateImageRequest PatientID 为 0 表示解除关联
type UpdateImageRequest struct {
	Title     *string `json:"title"`
	Text      *string `json:"text"`
	PatientID *uint   `json:"patient_id"`
}

type Base64Response struct {
	Image    string `json:"image"`
	MimeType string `json:"mime_type"`
}
