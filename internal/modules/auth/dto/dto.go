package dto

import "ariavt-server/internal/model"

// LoginRequest 同时支持 OAuth2 password 表单与 JSON
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type VerifyTokenResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}
