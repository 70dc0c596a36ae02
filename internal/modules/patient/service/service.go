package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/model"
	moduledto "ariavt-server/internal/modules/patient/dto"
	"ariavt-server/internal/modules/patient/repo"
	"ariavt-server/internal/platform/access"
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	maxNationalIDLength = 64
	maxPageSize         = 100
)

type Service struct {
	patientStore repo.PatientStore
}

func New(patientStore repo.PatientStore) *Service {
	return &Service{patientStore: patientStore}
}

func (s *Service) Create(ctx context.Context, req moduledto.CreatePatientRequest) (*model.Patient, error) {
	nationalID := strings.TrimSpace(req.NationalID)
	if nationalID == "" {
		return nil, common.NewValidationError("患者编号不能为空")
	}
	if len(nationalID) > maxNationalIDLength {
		return nil, common.NewValidationError(fmt.Sprintf("患者编号长度不能超过 %d", maxNationalIDLength))
	}

	patient := &model.Patient{NationalID: nationalID}
	if err := s.patientStore.Create(ctx, patient); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.NewConflictError("患者编号已存在")
		}
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return patient, nil
}

func (s *Service) List(ctx context.Context, page, pageSize int) (*moduledto.PatientListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	patients, total, err := s.patientStore.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return &moduledto.PatientListResponse{List: patients, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Patient, error) {
	patient, err := s.patientStore.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewNotFoundError("患者不存在")
	}
	if err != nil {
		return nil, fmt.Errorf("find patient: %w", err)
	}
	return patient, nil
}

// Delete 仅管理员；关联图片保留但解除关联。
func (s *Service) Delete(ctx context.Context, actor access.Actor, id uint) error {
	if err := access.RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.patientStore.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("患者不存在")
		}
		return fmt.Errorf("delete patient: %w", err)
	}
	log.WithFields(log.Fields{"patient_id": id, "by": actor.Username}).Info("patient deleted")
	return nil
}
