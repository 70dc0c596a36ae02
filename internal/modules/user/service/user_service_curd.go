package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	moduledto "ariavt-server/internal/modules/user/dto"
	"ariavt-server/internal/platform/access"
	"ariavt-server/internal/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxPageSize = 100

// Create 管理员创建用户。
func (s *Service) Create(ctx context.Context, actor access.Actor, req moduledto.CreateUserRequest) (*model.User, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if ok, msg := utils.ValidateUsername(username); !ok {
		return nil, common.NewValidationError(msg)
	}
	if ok, msg := utils.ValidatePassword(req.Password); !ok {
		return nil, common.NewValidationError(msg)
	}
	email := strings.TrimSpace(req.Email)
	if email != "" {
		if ok, msg := utils.ValidateEmail(email); !ok {
			return nil, common.NewValidationError(msg)
		}
	}
	role := consts.RoleUser
	if req.Role != nil {
		role = *req.Role
	}
	if !role.Valid() {
		return nil, common.NewValidationError("角色无效")
	}

	taken, err := s.userStore.UsernameExists(ctx, username, nil)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, common.NewConflictError("用户名已存在")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: username,
		FullName: strings.TrimSpace(req.FullName),
		Email:    email,
		Password: hash,
		Role:     role,
		Disabled: req.Disabled,
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError("用户名已存在")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	log.WithFields(log.Fields{"user": user.Username, "by": actor.Username}).Info("user created")
	return user, nil
}

// List 管理员分页列出用户。
func (s *Service) List(ctx context.Context, actor access.Actor, page, pageSize int) (*moduledto.UserListResponse, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	users, total, err := s.userStore.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &moduledto.UserListResponse{List: users, Total: total, Page: page, PageSize: pageSize}, nil
}

// Get 本人或管理员可查看。
func (s *Service) Get(ctx context.Context, actor access.Actor, id uint) (*model.User, error) {
	if err := access.Authorize(actor, id); err != nil {
		return nil, err
	}
	return s.find(ctx, id)
}

func (s *Service) Me(ctx context.Context, actor access.Actor) (*model.User, error) {
	return s.find(ctx, actor.ID)
}

// Update 本人可改资料与密码，角色和禁用状态只有管理员能改。
func (s *Service) Update(ctx context.Context, actor access.Actor, id uint, req moduledto.UpdateUserRequest) (*model.User, error) {
	if err := access.Authorize(actor, id); err != nil {
		return nil, err
	}
	if (req.Role != nil || req.Disabled != nil) && !actor.IsAdmin() {
		return nil, common.NewUnauthorizedError("只有管理员可以修改角色或禁用状态")
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != "" {
			if ok, msg := utils.ValidateEmail(email); !ok {
				return nil, common.NewValidationError(msg)
			}
		}
		user.Email = email
	}
	if req.Password != nil {
		if ok, msg := utils.ValidatePassword(*req.Password); !ok {
			return nil, common.NewValidationError(msg)
		}
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, common.NewValidationError("角色无效")
		}
		if actor.ID == user.ID && *req.Role != consts.RoleAdmin {
			return nil, common.NewForbiddenError("不能撤销自己的管理员权限")
		}
		user.Role = *req.Role
	}
	if req.Disabled != nil {
		if actor.ID == user.ID && *req.Disabled {
			return nil, common.NewForbiddenError("不能禁用自己")
		}
		user.Disabled = *req.Disabled
	}

	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete 管理员删除用户及其全部图片，不能删除自己。
func (s *Service) Delete(ctx context.Context, actor access.Actor, id uint) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	if actor.ID == id {
		return common.NewForbiddenError("不能删除自己")
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}

	if s.imageService != nil {
		if err := s.imageService.PurgeUser(ctx, id); err != nil {
			return fmt.Errorf("purge user images: %w", err)
		}
	}
	if err := s.userStore.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("用户不存在")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	log.WithFields(log.Fields{"user_id": id, "by": actor.Username}).Info("user deleted")
	return nil
}

func (s *Service) find(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.userStore.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewNotFoundError("用户不存在")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
