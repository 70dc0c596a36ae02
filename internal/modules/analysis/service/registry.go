package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	"ariavt-server/internal/modules/analysis/dto"
	"ariavt-server/internal/modules/analysis/repo"
	"ariavt-server/internal/platform/access"
	"ariavt-server/internal/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Registry 分析服务描述的增删改查，变更操作仅管理员可用。
type Registry struct {
	services repo.ServiceStore
	results  *ResultStore
}

func NewRegistry(services repo.ServiceStore, results *ResultStore) *Registry {
	return &Registry{services: services, results: results}
}

func (r *Registry) Create(ctx context.Context, actor access.Actor, req dto.CreateServiceRequest) (*model.Service, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}

	svc := &model.Service{
		Name:        strings.TrimSpace(req.Name),
		URL:         strings.TrimSpace(req.URL),
		ResultType:  req.ResultType,
		FullName:    strings.TrimSpace(req.FullName),
		Description: req.Description,
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}
	if err := r.ensureNameFree(ctx, svc.Name, 0); err != nil {
		return nil, err
	}

	if err := r.services.Create(ctx, svc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError("服务名已存在")
		}
		return nil, fmt.Errorf("create service: %w", err)
	}
	log.WithFields(log.Fields{"service": svc.Name, "by": actor.Username}).Info("analysis service registered")
	return svc, nil
}

func (r *Registry) Get(ctx context.Context, id uint) (*model.Service, error) {
	svc, err := r.services.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewNotFoundError("服务不存在")
	}
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	return svc, nil
}

// List 没有任何服务时返回 not_found。
func (r *Registry) List(ctx context.Context) ([]model.Service, error) {
	services, err := r.services.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	if len(services) == 0 {
		return nil, common.NewNotFoundError("尚未注册任何服务")
	}
	return services, nil
}

func (r *Registry) Update(ctx context.Context, actor access.Actor, id uint, req dto.UpdateServiceRequest) (*model.Service, error) {
	if err := access.RequireAdmin(actor); err != nil {
		return nil, err
	}
	svc, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.URL != nil {
		svc.URL = strings.TrimSpace(*req.URL)
	}
	if req.ResultType != nil {
		svc.ResultType = *req.ResultType
	}
	if req.FullName != nil {
		svc.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}

	if err := validateService(svc); err != nil {
		return nil, err
	}
	if err := r.ensureNameFree(ctx, svc.Name, svc.ID); err != nil {
		return nil, err
	}
	if err := r.services.Save(ctx, svc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError("服务名已存在")
		}
		return nil, fmt.Errorf("update service: %w", err)
	}
	return svc, nil
}

// Delete 级联删除该服务产生的全部结果。
func (r *Registry) Delete(ctx context.Context, actor access.Actor, id uint) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	removed, err := r.services.DeleteWithResults(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return common.NewNotFoundError("服务不存在")
	}
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	r.results.RemoveFiles(ctx, removed)
	log.WithFields(log.Fields{"service_id": id, "results": len(removed), "by": actor.Username}).Info("analysis service deleted")
	return nil
}

func (r *Registry) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := r.services.FindByName(ctx, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("find service by name: %w", err)
	}
	if existing.ID != selfID {
		return common.NewConflictError("服务名已存在")
	}
	return nil
}

func validateService(svc *model.Service) error {
	if ok, msg := utils.ValidateServiceName(svc.Name); !ok {
		return common.NewValidationError(msg)
	}
	if ok, msg := utils.ValidateServiceURL(svc.URL); !ok {
		return common.NewValidationError(msg)
	}
	if !svc.ResultType.Valid() {
		return common.NewValidationError(fmt.Sprintf("结果类型必须是 %s 或 %s", consts.ResultTypeImage, consts.ResultTypeMeasurement))
	}
	return nil
}
