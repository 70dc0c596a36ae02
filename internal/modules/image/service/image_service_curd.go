package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/model"
	moduledto "ariavt-server/internal/modules/image/dto"
	"ariavt-server/internal/modules/image/repo"
	"ariavt-server/internal/platform/access"
	"ariavt-server/internal/platform/storage"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const maxPageSize = 100

// List 普通用户只能看到自己的图片；指定 ids 但一张都没有时返回 not_found。
func (s *Service) List(ctx context.Context, actor access.Actor, req moduledto.ImageListRequest) (*moduledto.ImageListResponse, error) {
	page, pageSize := req.Page, req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	userID := req.UserID
	if !actor.IsAdmin() {
		if userID != nil && *userID != actor.ID {
			return nil, common.NewUnauthorizedError("无权查看其他用户的图片")
		}
		self := actor.ID
		userID = &self
	}

	images, total, err := s.imageStore.ListImages(ctx, repo.ListImagesParams{
		UserID: userID,
		IDs:    req.IDs,
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	if len(req.IDs) > 0 && total == 0 {
		return nil, common.NewNotFoundError("图片不存在")
	}

	return &moduledto.ImageListResponse{List: images, Total: total, Page: page, PageSize: pageSize}, nil
}

// Get 读取图片元数据，仅所有者或管理员可用。
func (s *Service) Get(ctx context.Context, actor access.Actor, id uint) (*model.Image, error) {
	image, err := s.imageStore.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewNotFoundError("图片不存在")
	}
	if err != nil {
		return nil, fmt.Errorf("find image: %w", err)
	}
	if err := access.Authorize(actor, image.UserID); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *Service) ReadFile(ctx context.Context, actor access.Actor, id uint) (*model.Image, []byte, error) {
	image, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.files.Read(ctx, image.Path)
	if errors.Is(err, storage.ErrNotExist) {
		log.WithFields(log.Fields{"image_id": image.ID, "path": image.Path}).Error("image record exists but file is missing")
		return nil, nil, common.WrapServiceError(common.ErrorCodeNotFound, "图片文件不存在", err)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read image: %w", err)
	}
	return image, data, nil
}

func (s *Service) Base64(ctx context.Context, actor access.Actor, id uint) (*moduledto.Base64Response, error) {
	image, data, err := s.ReadFile(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return &moduledto.Base64Response{
		Image:    base64.StdEncoding.EncodeToString(data),
		MimeType: image.MimeType,
	}, nil
}

// Update 修改标题、标注文本与患者关联。
func (s *Service) Update(ctx context.Context, actor access.Actor, id uint, req moduledto.UpdateImageRequest) (*model.Image, error) {
	image, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		image.Title = strings.TrimSpace(*req.Title)
	}
	if req.Text != nil {
		image.Text = *req.Text
	}
	if req.PatientID != nil {
		if err := s.checkPatient(ctx, req.PatientID); err != nil {
			return nil, err
		}
		image.PatientID = normalizePatientID(req.PatientID)
	}

	if err := s.imageStore.Save(ctx, image); err != nil {
		return nil, fmt.Errorf("update image: %w", err)
	}
	return image, nil
}

// Delete 先清理分析结果，再删除记录，最后删除文件。
func (s *Service) Delete(ctx context.Context, actor access.Actor, id uint) error {
	image, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.results.RemoveByImage(ctx, image.ID); err != nil {
		return fmt.Errorf("remove results: %w", err)
	}
	if err := s.imageStore.Delete(ctx, image.ID); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	s.discard(ctx, image.Path)
	return nil
}

// PurgeUser 删除用户名下全部图片及其分析结果，用户被删除前调用。
func (s *Service) PurgeUser(ctx context.Context, userID uint) error {
	images, err := s.imageStore.ListByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("list user images: %w", err)
	}
	ids := make([]uint, 0, len(images))
	for _, image := range images {
		if err := s.results.RemoveByImage(ctx, image.ID); err != nil {
			return fmt.Errorf("remove results: %w", err)
		}
		ids = append(ids, image.ID)
	}
	if err := s.imageStore.DeleteByIDs(ctx, ids); err != nil {
		return fmt.Errorf("delete user images: %w", err)
	}
	for _, image := range images {
		s.discard(ctx, image.Path)
	}
	return nil
}
