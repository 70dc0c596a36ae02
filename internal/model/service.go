package model

import "ariavt-server/internal/consts"

// Service 外部分析服务描述。
type Service struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	Name        string            `json:"name" gorm:"not null;uniqueIndex;size:128"`
	URL         string            `json:"url" gorm:"not null"`
	ResultType  consts.ResultType `json:"result_type" gorm:"not null;size:32"`
	FullName    string            `json:"full_name"`
	Description string            `json:"description"`
}
