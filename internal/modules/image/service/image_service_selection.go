package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/model"
	"ariavt-server/internal/platform/access"
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// CreateSelection 暂存一批图片 id，返回可一次性使用的 token。
func (s *Service) CreateSelection(ctx context.Context, ids []uint) (string, error) {
	if len(ids) == 0 {
		return "", common.NewValidationError("请选择图片")
	}
	for _, id := range ids {
		if id == 0 {
			return "", common.NewValidationError("图片 id 参数错误")
		}
	}
	token, err := s.selections.Create(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("create selection: %w", err)
	}
	return token, nil
}

// DeleteSelection 删除 token 对应的全部图片；只要有一张不属于调用者就整体拒绝，token 保持可用。
// 已不存在的 id 被跳过，返回值是实际删除的 id。
func (s *Service) DeleteSelection(ctx context.Context, actor access.Actor, token string) ([]uint, error) {
	ids, ok, err := s.selections.Consume(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("consume selection: %w", err)
	}
	if !ok {
		return nil, common.NewNotFoundError("选择不存在或已过期")
	}

	images, err := s.imageStore.FindByIDs(ctx, ids)
	if err != nil {
		s.restoreSelection(ctx, ids)
		return nil, fmt.Errorf("find images: %w", err)
	}
	byID := make(map[uint]model.Image, len(images))
	for _, image := range images {
		if err := access.Authorize(actor, image.UserID); err != nil {
			s.restoreSelection(ctx, ids)
			return nil, err
		}
		byID[image.ID] = image
	}

	removed := make([]uint, 0, len(byID))
	seen := make(map[uint]bool, len(byID))
	for _, id := range ids {
		if _, ok := byID[id]; !ok || seen[id] {
			continue
		}
		seen[id] = true
		if err := s.results.RemoveByImage(ctx, id); err != nil {
			return nil, fmt.Errorf("remove results: %w", err)
		}
		removed = append(removed, id)
	}
	if err := s.imageStore.DeleteByIDs(ctx, removed); err != nil {
		return nil, fmt.Errorf("delete images: %w", err)
	}
	for _, id := range removed {
		s.discard(ctx, byID[id].Path)
	}

	log.WithFields(log.Fields{"user_id": actor.ID, "removed": len(removed)}).Info("selection deleted")
	return removed, nil
}

// restoreSelection 相同 id 序列重建出相同 token。
func (s *Service) restoreSelection(ctx context.Context, ids []uint) {
	if _, err := s.selections.Create(ctx, ids); err != nil {
		log.WithError(err).Warn("failed to restore selection")
	}
}
