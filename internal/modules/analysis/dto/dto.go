package dto

import "ariavt-server/internal/consts"

type CreateServiceRequest struct {
	Name        string            `json:"name" binding:"required"`
	URL         string            `json:"url" binding:"required"`
	ResultType  consts.ResultType `json:"result_type" binding:"required"`
	FullName    string            `json:"full_name"`
	Description string            `json:"description"`
}

// UpdateServiceRequest 只合并非 nil 字段
type UpdateServiceRequest struct {
	Name        *string            `json:"name"`
	URL         *string            `json:"url"`
	ResultType  *consts.ResultType `json:"result_type"`
	FullName    *string            `json:"full_name"`
	Description *string            `json:"description"`
}

type AnalyzeQuery struct {
	ImageID       *uint `form:"image_id"`
	ForceAnalysis bool  `form:"force_analysis"`
}
