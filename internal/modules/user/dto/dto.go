package dto

import (
	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
)

type CreateUserRequest struct {
	Username string       `json:"username" binding:"required"`
	Password string       `json:"password" binding:"required"`
	Email    string       `json:"email"`
	FullName string       `json:"full_name"`
	Role     *consts.Role `json:"role"`
	Disabled bool         `json:"disabled"`
}

// UpdateUserRequest Role 与 Disabled 仅管理员可改
type UpdateUserRequest struct {
	Password *string      `json:"password"`
	Email    *string      `json:"email"`
	FullName *string      `json:"full_name"`
	Role     *consts.Role `json:"role"`
	Disabled *bool        `json:"disabled"`
}

type UserListResponse struct {
	List     []model.User `json:"list"`
	Total    int64        `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
}
