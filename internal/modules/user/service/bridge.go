package service

import (
	"ariavt-server/internal/config"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FindByID 提供跨模块用户查询能力。
func (s *Service) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return s.userStore.FindByID(ctx, id)
}

// FindByUsername 提供按用户名查询能力。
func (s *Service) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userStore.FindByUsername(ctx, username)
}

// IsDisabled 供状态检查中间件使用；用户不存在时返回 gorm.ErrRecordNotFound。
func (s *Service) IsDisabled(ctx context.Context, id uint) (bool, error) {
	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.Disabled, nil
}

// CountAll 提供用户总量统计能力。
func (s *Service) CountAll(ctx context.Context) (int64, error) {
	return s.userStore.CountAll(ctx)
}

// EnsureBootstrapAdmin 系统中没有任何管理员时按配置创建默认管理员。
func (s *Service) EnsureBootstrapAdmin(ctx context.Context, cfg config.AdminConfig) error {
	admins, err := s.userStore.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	username := strings.TrimSpace(cfg.Username)
	if username == "" || cfg.Password == "" {
		log.Warn("⚠️ 未配置默认管理员，跳过创建")
		return nil
	}

	existing, err := s.userStore.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("find bootstrap admin: %w", err)
	}
	if existing != nil {
		existing.Role = consts.RoleAdmin
		existing.Disabled = false
		if err := s.userStore.Save(ctx, existing); err != nil {
			return fmt.Errorf("promote bootstrap admin: %w", err)
		}
		log.WithField("user", username).Warn("⚠️ 已将现有用户提升为管理员")
		return nil
	}

	hash, err := hashPassword(cfg.Password)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username: username,
		FullName: cfg.FullName,
		Email:    cfg.Email,
		Password: hash,
		Role:     consts.RoleAdmin,
	}
	if err := s.userStore.Create(ctx, admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	log.WithField("user", username).Info("✅ 已创建默认管理员")
	return nil
}
