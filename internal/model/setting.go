package model

type Setting struct {
	Key       string `gorm:"primaryKey;size:64" json:"key"`
	Value     string `gorm:"not null" json:"value"`
	Desc      string `json:"desc"`
	Category  string `gorm:"size:32" json:"category"`
	Sensitive bool   `gorm:"not null;default:false" json:"sensitive"`
}
