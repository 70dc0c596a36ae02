package model

type Image struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Title      string   `json:"title"`
	Text       string   `json:"text"`
	Path       string   `json:"relative_path" gorm:"not null;unique"`
	MimeType   string   `json:"mime_type" gorm:"not null"`
	Size       int64    `json:"size" gorm:"not null"`
	Width      int      `json:"width" gorm:"not null"`
	Height     int      `json:"height" gorm:"not null"`
	UploadedAt int64    `json:"uploaded_at" gorm:"not null;index"`
	UserID     uint     `json:"user_id" gorm:"not null;index"`
	User       User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	PatientID  *uint    `json:"patient_id" gorm:"index"`
	Patient    *Patient `gorm:"foreignKey:PatientID;references:ID;constraint:OnDelete:SET NULL;" json:"-"`
}
