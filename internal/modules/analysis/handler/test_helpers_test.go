package handler

import (
	"context"
	"net/http"
	"testing"

	"ariavt-server/internal/model"
	"ariavt-server/internal/modules/analysis/invoker"
	"ariavt-server/internal/modules/analysis/repo"
	analysisservice "ariavt-server/internal/modules/analysis/service"
	"ariavt-server/internal/platform/access"
	"ariavt-server/internal/platform/storage"
	"ariavt-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestHandler(t *testing.T) (*Handler, *gorm.DB, storage.Storage) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	gdb := testutils.SetupDB(t)
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	client := &http.Client{}
	t.Cleanup(client.CloseIdleConnections)

	services := repo.NewServiceRepository(gdb)
	results := analysisservice.NewResultStore(repo.NewResultRepository(gdb), files)
	return New(
		analysisservice.NewRegistry(services, results),
		analysisservice.NewOrchestrator(services, results, files, invoker.NewWithClient(client, nil)),
	), gdb, files
}

// newRouter 以固定身份挂载全部服务路由
func newRouter(h *Handler, user *model.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			access.SetActor(c, access.Actor{ID: user.ID, Username: user.Username, Role: user.Role})
		}
		c.Next()
	})
	r.GET("/services/", h.ListServices)
	r.POST("/services/", h.CreateService)
	r.GET("/services/:id", h.GetService)
	r.PUT("/services/:id", h.UpdateService)
	r.DELETE("/services/:id", h.DeleteService)
	r.DELETE("/services/:id/results/:image_id", h.DiscardResult)
	return r
}

func writeImageFile(t *testing.T, files storage.Storage, img *model.Image) {
	t.Helper()
	require.NoError(t, files.Write(context.Background(), img.Path, testutils.MinimalPNG(t, 2, 2, 1)))
}
