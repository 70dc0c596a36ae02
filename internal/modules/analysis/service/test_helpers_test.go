package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	"ariavt-server/internal/modules/analysis/invoker"
	"ariavt-server/internal/modules/analysis/repo"
	"ariavt-server/internal/platform/access"
	"ariavt-server/internal/platform/storage"
	"ariavt-server/internal/testutils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	gdb      *gorm.DB
	files    *storage.Local
	results  *ResultStore
	registry *Registry
	orch     *Orchestrator

	owner *model.User
	other *model.User
	admin *model.User
	image *model.Image
}

func (e *testEnv) actor(u *model.User) access.Actor {
	return access.Actor{ID: u.ID, Username: u.Username, Role: u.Role}
}

func (e *testEnv) countResults(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.gdb.Model(&model.Result{}).Count(&n).Error)
	return n
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutils.SetupDB(t)
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	client := &http.Client{}
	t.Cleanup(client.CloseIdleConnections)

	services := repo.NewServiceRepository(gdb)
	results := NewResultStore(repo.NewResultRepository(gdb), files)

	env := &testEnv{
		gdb:      gdb,
		files:    files,
		results:  results,
		registry: NewRegistry(services, results),
		orch:     NewOrchestrator(services, results, files, invoker.NewWithClient(client, nil)),
		owner:    testutils.CreateUser(t, gdb, "owner", consts.RoleUser),
		other:    testutils.CreateUser(t, gdb, "other", consts.RoleUser),
		admin:    testutils.CreateUser(t, gdb, "root", consts.RoleAdmin),
	}
	env.image = testutils.CreateImage(t, gdb, env.owner.ID, "images/scan.png")
	require.NoError(t, files.Write(context.Background(), env.image.Path, testutils.MinimalPNG(t, 4, 4, 7)))
	return env
}

// fakeService 计数的外部分析服务
type fakeService struct {
	*httptest.Server
	hits atomic.Int32
}

func newFakeService(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *fakeService {
	t.Helper()
	fs := &fakeService{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func jsonBody(body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}
