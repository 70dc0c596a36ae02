package model

import (
	"ariavt-server/internal/consts"
	"time"
)

// Result 每个 (image, service) 组合至多一条，重复分析时原地覆盖。
type Result struct {
	ID          uint              `json:"id" gorm:"primaryKey"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	ImageID     uint              `json:"image_id" gorm:"not null;uniqueIndex:idx_result_image_service"`
	ServiceID   uint              `json:"service_id" gorm:"not null;uniqueIndex:idx_result_image_service;index"`
	Kind        consts.ResultType `json:"kind" gorm:"not null;size:32"`
	Path        string            `json:"relative_path" gorm:"not null"`
	ContentType string            `json:"content_type"`
	Image       Image             `gorm:"foreignKey:ImageID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	Service     Service           `gorm:"foreignKey:ServiceID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
}
