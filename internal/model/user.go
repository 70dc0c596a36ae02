package model

import (
	"ariavt-server/internal/consts"
	"time"
)

type User struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Username  string      `json:"username" gorm:"unique;not null;size:64"`
	FullName  string      `json:"full_name"`
	Email     string      `json:"email" gorm:"not null;size:255"`
	Password  string      `json:"-" gorm:"not null"`
	Disabled  bool        `json:"disabled" gorm:"not null;default:false"`
	Role      consts.Role `json:"role" gorm:"not null;size:16;default:user"`
	Images    []Image     `json:"-"`
}

// IsAdmin 是否为管理员角色
func (u *User) IsAdmin() bool {
	return u.Role == consts.RoleAdmin
}
