package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/model"
	"ariavt-server/internal/modules/analysis/payload"
	"ariavt-server/internal/modules/analysis/repo"
	"ariavt-server/internal/platform/storage"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	resultDir  = "results"
	stagingDir = "staging/results"
)

// ResultStore 维护每个 (image, service) 至多一份的分析结果：数据库行 + 存储中的文件。
type ResultStore struct {
	results repo.ResultStore
	files   storage.Storage
}

func NewResultStore(results repo.ResultStore, files storage.Storage) *ResultStore {
	return &ResultStore{results: results, files: files}
}

// ResultKey 结果文件的确定性命名。
// 服务 ID 参与命名，重命名或名称复用不会让两个服务共享同一文件。
func ResultKey(imageID, serviceID uint, serviceName, ext string) string {
	return fmt.Sprintf("%s/%d_%d_%s%s", resultDir, imageID, serviceID, serviceName, ext)
}

// Find 不存在时返回 nil, nil。
func (s *ResultStore) Find(ctx context.Context, imageID, serviceID uint) (*model.Result, error) {
	result, err := s.results.FindByPair(ctx, imageID, serviceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find result: %w", err)
	}
	return result, nil
}

// Store 写暂存文件 -> upsert 记录 -> 提交到最终文件名。
// 记录写入失败时删除暂存文件；提交失败时回滚记录。
func (s *ResultStore) Store(ctx context.Context, image *model.Image, svc *model.Service, p payload.Payload) (*model.Result, error) {
	p, err := payload.Revalidate(p)
	if err != nil {
		return nil, err
	}
	if p.Kind() != svc.ResultType {
		return nil, common.NewInvalidPayloadError("结果类型与服务声明不一致")
	}

	finalKey := ResultKey(image.ID, svc.ID, svc.Name, p.Ext())
	stagingKey := fmt.Sprintf("%s/%s%s", stagingDir, uuid.NewString(), p.Ext())

	if err := s.files.Write(ctx, stagingKey, p.Bytes()); err != nil {
		return nil, fmt.Errorf("stage result: %w", err)
	}

	previous, err := s.Find(ctx, image.ID, svc.ID)
	if err != nil {
		s.discard(ctx, stagingKey)
		return nil, err
	}

	result := &model.Result{
		ImageID:     image.ID,
		ServiceID:   svc.ID,
		Kind:        p.Kind(),
		Path:        finalKey,
		ContentType: p.ContentType(),
	}
	if err := s.results.Upsert(ctx, result); err != nil {
		s.discard(ctx, stagingKey)
		return nil, fmt.Errorf("save result: %w", err)
	}

	if err := s.files.Rename(ctx, stagingKey, finalKey); err != nil {
		s.discard(ctx, stagingKey)
		s.rollback(ctx, result, previous)
		return nil, fmt.Errorf("commit result: %w", err)
	}

	if previous != nil && previous.Path != finalKey {
		s.discard(ctx, previous.Path)
	}
	return result, nil
}

// Load 读回已保存的结果；文件缺失返回 not_found。
func (s *ResultStore) Load(ctx context.Context, result *model.Result) (payload.Payload, error) {
	data, err := s.files.Read(ctx, result.Path)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, common.WrapServiceError(common.ErrorCodeNotFound, "结果文件不存在", err)
	}
	if err != nil {
		return nil, fmt.Errorf("read result: %w", err)
	}
	p, err := payload.Interpret(result.Kind, data)
	if err != nil {
		return nil, common.WrapServiceError(common.ErrorCodeInternal, "结果文件已损坏", err)
	}
	return p, nil
}

// Remove 删除文件（已不存在视为成功）与记录。
func (s *ResultStore) Remove(ctx context.Context, result *model.Result) error {
	if err := s.files.Delete(ctx, result.Path); err != nil {
		return fmt.Errorf("delete result file: %w", err)
	}
	if err := s.results.Delete(ctx, result.ID); err != nil {
		return fmt.Errorf("delete result: %w", err)
	}
	return nil
}

// RemoveByImage 图片删除时级联清理其全部结果。
func (s *ResultStore) RemoveByImage(ctx context.Context, imageID uint) error {
	results, err := s.results.ListByImage(ctx, imageID)
	if err != nil {
		return fmt.Errorf("list results: %w", err)
	}
	for i := range results {
		if err := s.Remove(ctx, &results[i]); err != nil {
			return err
		}
	}
	return nil
}

// RemoveFiles 记录已被删除后清理对应文件，失败只记日志。
func (s *ResultStore) RemoveFiles(ctx context.Context, results []model.Result) {
	for _, r := range results {
		s.discard(ctx, r.Path)
	}
}

func (s *ResultStore) discard(ctx context.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil {
		log.WithError(err).WithField("key", key).Warn("failed to remove result file")
	}
}

func (s *ResultStore) rollback(ctx context.Context, current *model.Result, previous *model.Result) {
	var err error
	if previous != nil {
		restored := *previous
		err = s.results.Upsert(ctx, &restored)
	} else {
		err = s.results.Delete(ctx, current.ID)
	}
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"image_id":   current.ImageID,
			"service_id": current.ServiceID,
		}).Error("failed to roll back result record")
	}
}
