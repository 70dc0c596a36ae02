package repo

import (
	"ariavt-server/internal/model"
	"context"
)

// UserStore 认证只需要按用户名与 id 读取用户。
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}
