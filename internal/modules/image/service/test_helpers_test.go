package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"ariavt-server/internal/model"
	modulerepo "ariavt-server/internal/modules/image/repo"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	"ariavt-server/internal/platform/access"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/platform/selection"
	"ariavt-server/internal/platform/storage"
	"ariavt-server/internal/testutils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// recordingCleaner 记录被清理结果的图片 id
type recordingCleaner struct {
	mu  sync.Mutex
	ids []uint
}

func (c *recordingCleaner) RemoveByImage(_ context.Context, imageID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids = append(c.ids, imageID)
	return nil
}

type testEnv struct {
	gdb     *gorm.DB
	svc     *Service
	files   *storage.Local
	cleaner *recordingCleaner
}

func setupTestService(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutils.SetupDB(t)
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	selections := selection.NewMemory(time.Minute)
	t.Cleanup(func() { _ = selections.Close() })

	appService := platformservice.NewAppService(settingsrepo.NewSettingRepository(gdb))
	appService.ClearCache()
	cleaner := &recordingCleaner{}
	return &testEnv{
		gdb:     gdb,
		svc:     New(appService, modulerepo.NewImageRepository(gdb), files, cleaner, selections),
		files:   files,
		cleaner: cleaner,
	}
}

func actorOf(u *model.User) access.Actor {
	return access.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

// fileHeader 通过真实的 multipart 编解码构造上传文件
func fileHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&buf, mw.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	require.Len(t, form.File["file"], 1)
	return form.File["file"][0]
}
