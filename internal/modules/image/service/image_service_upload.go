package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	moduledto "ariavt-server/internal/modules/image/dto"
	"ariavt-server/internal/platform/access"
	"ariavt-server/internal/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	imageDir        = "images"
	imageStagingDir = "staging/images"
)

// stagedUpload 已写入暂存区、尚未落库的上传文件
type stagedUpload struct {
	filename   string
	stagingKey string
	finalKey   string
	size       int64
	info       utils.ImageInfo
}

// Upload 校验并保存单张图片：暂存 -> 写库 -> 提交到最终路径。
func (s *Service) Upload(ctx context.Context, actor access.Actor, file *multipart.FileHeader, meta moduledto.UploadMeta) (*model.Image, error) {
	if err := s.checkPatient(ctx, meta.PatientID); err != nil {
		return nil, err
	}
	staged, err := s.stage(ctx, file)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, actor.ID, staged, meta)
}

// BatchUpload 全部成功或全部不生效。
func (s *Service) BatchUpload(ctx context.Context, actor access.Actor, files []*multipart.FileHeader) ([]uint, error) {
	if len(files) == 0 {
		return nil, common.NewValidationError("请选择文件")
	}
	if limit := s.GetInt(consts.ConfigBatchUploadMaxFiles); limit > 0 && len(files) > limit {
		return nil, common.NewValidationError(fmt.Sprintf("单次最多上传 %d 个文件", limit))
	}

	staged := make([]*stagedUpload, 0, len(files))
	for _, file := range files {
		st, err := s.stage(ctx, file)
		if err != nil {
			for _, prev := range staged {
				s.discard(ctx, prev.stagingKey)
			}
			return nil, fmt.Errorf("%s: %w", file.Filename, err)
		}
		staged = append(staged, st)
	}

	committed := make([]*model.Image, 0, len(staged))
	for i, st := range staged {
		image, err := s.commit(ctx, actor.ID, st, moduledto.UploadMeta{})
		if err != nil {
			for _, rest := range staged[i+1:] {
				s.discard(ctx, rest.stagingKey)
			}
			for _, done := range committed {
				s.rollbackUpload(ctx, done)
			}
			return nil, err
		}
		committed = append(committed, image)
	}

	ids := make([]uint, len(committed))
	for i, image := range committed {
		ids[i] = image.ID
	}
	log.WithFields(log.Fields{"user_id": actor.ID, "count": len(ids)}).Info("batch upload stored")
	return ids, nil
}

func (s *Service) stage(ctx context.Context, file *multipart.FileHeader) (*stagedUpload, error) {
	maxBytes := s.MaxUploadBytes()
	if file.Size > maxBytes {
		return nil, common.NewValidationError(fmt.Sprintf("文件大小不能超过 %dMB", maxBytes>>20))
	}

	ext := utils.NormalizeExt(filepath.Ext(file.Filename))
	if ext == "" {
		return nil, common.NewValidationError("无法识别文件类型")
	}
	if !utils.ExtAllowed(ext, s.GetString(consts.ConfigAllowFileExtensions)) {
		return nil, common.NewValidationError(fmt.Sprintf("不支持的文件类型: %s", ext))
	}

	src, err := file.Open()
	if err != nil {
		return nil, common.NewValidationError("无法读取上传文件")
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(io.LimitReader(src, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, common.NewValidationError(fmt.Sprintf("文件大小不能超过 %dMB", maxBytes>>20))
	}

	info, err := utils.InspectImage(data)
	if errors.Is(err, utils.ErrNotImage) {
		return nil, common.WrapServiceError(common.ErrorCodeInvalidPayload, "文件内容不是有效图片", err)
	}
	if err != nil {
		return nil, fmt.Errorf("inspect upload: %w", err)
	}

	name := uuid.NewString() + info.Ext()
	st := &stagedUpload{
		filename:   filepath.Base(file.Filename),
		stagingKey: path.Join(imageStagingDir, name),
		finalKey:   path.Join(imageDir, time.Now().Format("2006/01/02"), name),
		size:       int64(len(data)),
		info:       info,
	}
	if err := s.files.Write(ctx, st.stagingKey, data); err != nil {
		return nil, fmt.Errorf("stage upload: %w", err)
	}
	return st, nil
}

func (s *Service) commit(ctx context.Context, ownerID uint, st *stagedUpload, meta moduledto.UploadMeta) (*model.Image, error) {
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = st.filename
	}
	image := &model.Image{
		Title:      title,
		Text:       meta.Text,
		Path:       st.finalKey,
		MimeType:   st.info.MimeType,
		Size:       st.size,
		Width:      st.info.Width,
		Height:     st.info.Height,
		UploadedAt: time.Now().Unix(),
		UserID:     ownerID,
		PatientID:  normalizePatientID(meta.PatientID),
	}

	if err := s.imageStore.Create(ctx, image); err != nil {
		s.discard(ctx, st.stagingKey)
		return nil, fmt.Errorf("create image record: %w", err)
	}
	if err := s.files.Rename(ctx, st.stagingKey, st.finalKey); err != nil {
		s.discard(ctx, st.stagingKey)
		if delErr := s.imageStore.Delete(ctx, image.ID); delErr != nil {
			log.WithError(delErr).WithField("image_id", image.ID).Error("failed to roll back image record")
		}
		return nil, fmt.Errorf("commit upload: %w", err)
	}
	return image, nil
}

func (s *Service) rollbackUpload(ctx context.Context, image *model.Image) {
	if err := s.imageStore.Delete(ctx, image.ID); err != nil {
		log.WithError(err).WithField("image_id", image.ID).Error("failed to roll back image record")
	}
	s.discard(ctx, image.Path)
}

func (s *Service) checkPatient(ctx context.Context, patientID *uint) error {
	id := normalizePatientID(patientID)
	if id == nil {
		return nil
	}
	ok, err := s.imageStore.PatientExists(ctx, *id)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return common.NewValidationError("患者不存在")
	}
	return nil
}

func normalizePatientID(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}
