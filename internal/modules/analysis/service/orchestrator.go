package service

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/model"
	"ariavt-server/internal/modules/analysis/invoker"
	"ariavt-server/internal/modules/analysis/payload"
	"ariavt-server/internal/modules/analysis/repo"
	"ariavt-server/internal/platform/access"
	"ariavt-server/internal/platform/storage"
	"context"
	"errors"
	"fmt"

	"github.com/im7mortal/kmutex"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Caller 对外部分析服务的一次调用。
type Caller interface {
	Invoke(ctx context.Context, svc *model.Service, filename string, image []byte) (*invoker.RawResponse, error)
}

type AnalyzeRequest struct {
	ImageID   uint
	ServiceID uint
	Actor     access.Actor
	Force     bool
}

// Outcome 命中缓存与新分析对外表现一致，只有 Cached 不同。
type Outcome struct {
	Payload payload.Payload
	Result  *model.Result
	Cached  bool
}

type pairKey struct {
	imageID   uint
	serviceID uint
}

type Orchestrator struct {
	services repo.ServiceStore
	results  *ResultStore
	files    storage.Storage
	caller   Caller
	locks    *kmutex.Kmutex
}

func NewOrchestrator(services repo.ServiceStore, results *ResultStore, files storage.Storage, caller Caller) *Orchestrator {
	return &Orchestrator{
		services: services,
		results:  results,
		files:    files,
		caller:   caller,
		locks:    kmutex.New(),
	}
}

// Analyze 返回 (image, service) 的分析结果：未强制时优先读缓存，否则调用外部服务并保存。
// 归属校验先于服务存在性判断，非所有者拿不到任何关于服务的信息。
func (o *Orchestrator) Analyze(ctx context.Context, req AnalyzeRequest) (*Outcome, error) {
	image, err := o.resolveImage(ctx, req.ImageID)
	if err != nil {
		return nil, err
	}
	if err := access.Authorize(req.Actor, image.UserID); err != nil {
		return nil, err
	}
	svc, err := o.resolveService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.ResultType.Valid() {
		return nil, common.NewUnknownResultTypeError(fmt.Sprintf("服务声明了未知的结果类型: %q", string(svc.ResultType)))
	}

	entry := log.WithFields(log.Fields{"image_id": image.ID, "service": svc.Name, "force": req.Force})

	key := pairKey{imageID: image.ID, serviceID: svc.ID}
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	if !req.Force {
		outcome, err := o.cached(ctx, image.ID, svc.ID)
		if err != nil {
			return nil, err
		}
		if outcome != nil {
			entry.Debug("analysis served from cache")
			return outcome, nil
		}
	}

	data, err := o.files.Read(ctx, image.Path)
	if errors.Is(err, storage.ErrNotExist) {
		entry.WithField("path", image.Path).Error("image record exists but file is missing")
		return nil, common.WrapServiceError(common.ErrorCodeNotFound, "图片文件不存在", err)
	}
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	raw, err := o.caller.Invoke(ctx, svc, image.Path, data)
	if err != nil {
		if _, ok := common.AsServiceError(err); ok {
			return nil, err
		}
		return nil, common.NewUpstreamUnavailableError("分析服务不可用", err)
	}

	p, err := payload.Interpret(svc.ResultType, raw.Body)
	if err != nil {
		entry.WithError(err).Warn("analysis service returned invalid payload")
		return nil, err
	}

	result, err := o.results.Store(ctx, image, svc, p)
	if err != nil {
		return nil, err
	}
	entry.WithField("result_id", result.ID).Info("analysis stored")
	return &Outcome{Payload: p, Result: result}, nil
}

// Discard 删除某图片在某服务下的缓存结果，仅所有者或管理员可用。
func (o *Orchestrator) Discard(ctx context.Context, actor access.Actor, serviceID, imageID uint) error {
	image, err := o.resolveImage(ctx, imageID)
	if err != nil {
		return err
	}
	if err := access.Authorize(actor, image.UserID); err != nil {
		return err
	}
	svc, err := o.resolveService(ctx, serviceID)
	if err != nil {
		return err
	}

	key := pairKey{imageID: image.ID, serviceID: svc.ID}
	o.locks.Lock(key)
	defer o.locks.Unlock(key)

	result, err := o.results.Find(ctx, image.ID, svc.ID)
	if err != nil {
		return err
	}
	if result == nil {
		return common.NewNotFoundError("结果不存在")
	}
	return o.results.Remove(ctx, result)
}

// cached 记录存在但文件丢失时当作未命中，由后续流程重新生成。
func (o *Orchestrator) cached(ctx context.Context, imageID, serviceID uint) (*Outcome, error) {
	result, err := o.results.Find(ctx, imageID, serviceID)
	if err != nil || result == nil {
		return nil, err
	}
	p, err := o.results.Load(ctx, result)
	if common.HasCode(err, common.ErrorCodeNotFound) {
		log.WithFields(log.Fields{"result_id": result.ID, "path": result.Path}).Warn("cached result file missing, re-analyzing")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Outcome{Payload: p, Result: result, Cached: true}, nil
}

func (o *Orchestrator) resolveImage(ctx context.Context, id uint) (*model.Image, error) {
	image, err := o.services.FindImageByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewNotFoundError("图片不存在")
	}
	if err != nil {
		return nil, fmt.Errorf("find image: %w", err)
	}
	return image, nil
}

func (o *Orchestrator) resolveService(ctx context.Context, id uint) (*model.Service, error) {
	svc, err := o.services.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.NewNotFoundError("服务不存在")
	}
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	return svc, nil
}
