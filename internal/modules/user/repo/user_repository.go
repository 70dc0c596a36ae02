package repo

import (
	"ariavt-server/internal/model"
	"context"
)

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Save(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset int, limit int) ([]model.User, int64, error)
	UsernameExists(ctx context.Context, username string, excludeUserID *uint) (bool, error)
	CountAdmins(ctx context.Context) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}
