package model

import "time"

// Patient 去标识化的患者记录，图片可以关联零或一个患者。
type Patient struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	NationalID string    `json:"national_id" gorm:"not null;uniqueIndex;size:64"`
	CreatedAt  time.Time `json:"created_at"`
}
