package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/config"
	"ariavt-server/internal/model"
	"ariavt-server/internal/modules/auth/repo"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/utils"
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const TokenType = "bearer"

type Service struct {
	*platformservice.AppService
	userStore repo.UserStore
}

func New(appService *platformservice.AppService, userStore repo.UserStore) *Service {
	return &Service{
		AppService: appService,
		userStore:  userStore,
	}
}

// Login 校验用户名密码并签发登录令牌。
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userStore.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", common.NewUnauthorizedError("用户名或密码错误")
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", common.NewUnauthorizedError("用户名或密码错误")
	}
	if user.Disabled {
		return "", common.NewForbiddenError("账号已停用")
	}

	token, err := s.IssueLoginToken(user)
	if err != nil {
		return "", err
	}
	log.WithField("user", user.Username).Info("user logged in")
	return token, nil
}

func (s *Service) IssueLoginToken(user *model.User) (string, error) {
	minutes := config.Get().JWT.ExpirationMinutes
	if minutes <= 0 {
		minutes = 60
	}
	token, err := utils.GenerateLoginToken(user.ID, user.Username, user.Role, time.Duration(minutes)*time.Minute)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// VerifyToken 令牌有效且用户仍存在、未被禁用时返回该用户。
func (s *Service) VerifyToken(ctx context.Context, token string) (*model.User, error) {
	claims, err := utils.ParseLoginToken(token)
	if err != nil {
		return nil, common.NewUnauthorizedError("Token 无效或已过期")
	}
	user, err := s.userStore.FindByID(ctx, claims.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewUnauthorizedError("用户不存在")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.Disabled {
		return nil, common.NewForbiddenError("账号已停用")
	}
	return user, nil
}
