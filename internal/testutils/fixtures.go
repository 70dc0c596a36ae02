package testutils

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var fixtureSeq int64

// CreateUser 写入一个测试用户，密码明文为 password。
func CreateUser(t *testing.T, gdb *gorm.DB, username string, role consts.Role) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

// CreateImage 只写入图片记录，不写文件。
func CreateImage(t *testing.T, gdb *gorm.DB, ownerID uint, path string) *model.Image {
	t.Helper()
	if path == "" {
		path = fmt.Sprintf("images/fixture_%d.png", atomic.AddInt64(&fixtureSeq, 1))
	}
	img := &model.Image{
		Path:       path,
		MimeType:   "image/png",
		Size:       1,
		Width:      1,
		Height:     1,
		UserID:     ownerID,
		UploadedAt: time.Now().Unix(),
	}
	require.NoError(t, gdb.Create(img).Error)
	return img
}

func CreateService(t *testing.T, gdb *gorm.DB, name, url string, kind consts.ResultType) *model.Service {
	t.Helper()
	svc := &model.Service{Name: name, URL: url, ResultType: kind, FullName: name}
	require.NoError(t, gdb.Create(svc).Error)
	return svc
}
