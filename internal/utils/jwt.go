package utils

import (
	"ariavt-server/internal/config"
	"ariavt-server/internal/consts"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTypeLogin = "login"
	tokenIssuer    = "ariavt-server"
)

// LoginClaims 登录令牌携带的身份信息
type LoginClaims struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     consts.Role `json:"role"`
	Type     string      `json:"type"`
	jwt.RegisteredClaims
}

func (c *LoginClaims) IsAdmin() bool {
	return c.Role == consts.RoleAdmin
}

func getSecret() []byte {
	return []byte(config.Get().JWT.Secret)
}

func GenerateLoginToken(id uint, username string, role consts.Role, duration time.Duration) (string, error) {
	now := time.Now()
	claims := LoginClaims{
		ID:       id,
		Username: username,
		Role:     role,
		Type:     tokenTypeLogin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			Issuer:    tokenIssuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getSecret())
}

func ParseLoginToken(tokenString string) (*LoginClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &LoginClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getSecret(), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*LoginClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != tokenTypeLogin {
		return nil, errors.New("invalid token type")
	}
	return claims, nil
}
