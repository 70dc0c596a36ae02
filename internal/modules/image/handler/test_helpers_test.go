package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ariavt-server/internal/model"
	modulerepo "ariavt-server/internal/modules/image/repo"
	imageservice "ariavt-server/internal/modules/image/service"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	"ariavt-server/internal/platform/access"
	platformservice "ariavt-server/internal/platform/service"
	"ariavt-server/internal/platform/selection"
	"ariavt-server/internal/platform/storage"
	"ariavt-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopCleaner struct{}

func (noopCleaner) RemoveByImage(context.Context, uint) error { return nil }

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutils.SetupDB(t)
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	selections := selection.NewMemory(time.Minute)
	t.Cleanup(func() { _ = selections.Close() })

	appService := platformservice.NewAppService(settingsrepo.NewSettingRepository(gdb))
	return New(imageservice.New(appService, modulerepo.NewImageRepository(gdb), files, noopCleaner{}, selections)), gdb
}

func newRouter(h *Handler, user *model.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		access.SetActor(c, access.Actor{ID: user.ID, Username: user.Username, Role: user.Role})
		c.Next()
	})
	images := r.Group("/images")
	images.POST("/", h.UploadImage)
	images.POST("/batch-upload", h.BatchUploadImages)
	images.GET("/", h.ListImages)
	images.POST("/selection", h.CreateSelection)
	images.DELETE("/selection/:token", h.DeleteSelection)
	images.GET("/:id", h.GetImageFile)
	images.GET("/:id/info", h.GetImageInfo)
	images.GET("/:id/base64", h.GetImageBase64)
	images.PATCH("/:id", h.UpdateImage)
	images.DELETE("/:id", h.DeleteImage)
	return r
}

// multipartRequest 构造上传请求，fields 为普通表单字段
func multipartRequest(t *testing.T, url, field string, files map[string][]byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, url, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
