package repo

import (
	"ariavt-server/internal/model"
	"context"
)

type ServiceStore interface {
	Create(ctx context.Context, service *model.Service) error
	FindByID(ctx context.Context, id uint) (*model.Service, error)
	FindByName(ctx context.Context, name string) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
	Save(ctx context.Context, service *model.Service) error
	// DeleteWithResults 在一个事务里删除服务及其全部结果记录，返回被删结果供清理文件。
	DeleteWithResults(ctx context.Context, id uint) ([]model.Result, error)
	// FindImageByID 分析流程需要读取图片归属，跨表查询放在这里避免模块互相依赖。
	FindImageByID(ctx context.Context, id uint) (*model.Image, error)
}
