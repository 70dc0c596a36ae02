package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ariavt-server/internal/config"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/modules"
	analysishandler "ariavt-server/internal/modules/analysis/handler"
	analysisrepo "ariavt-server/internal/modules/analysis/repo"
	imagerepo "ariavt-server/internal/modules/image/repo"
	patientrepo "ariavt-server/internal/modules/patient/repo"
	settingsrepo "ariavt-server/internal/modules/settings/repo"
	systemrepo "ariavt-server/internal/modules/system/repo"
	userrepo "ariavt-server/internal/modules/user/repo"
	"ariavt-server/internal/platform/selection"
	"ariavt-server/internal/platform/service"
	"ariavt-server/internal/platform/storage"
	"ariavt-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := config.Get()
	cfg := prev
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationMinutes = 60
	cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	config.Set(cfg)
	t.Cleanup(func() { config.Set(prev) })

	gdb := testutils.SetupDB(t)
	files, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	selections := selection.NewMemory(time.Minute)
	t.Cleanup(func() { _ = selections.Close() })

	settingStore := settingsrepo.NewSettingRepository(gdb)
	appService := service.NewAppService(settingStore)
	appService.ClearCache()

	appModules := modules.New(appService, modules.Stores{
		Users:    userrepo.NewUserRepository(gdb),
		Images:   imagerepo.NewImageRepository(gdb),
		Services: analysisrepo.NewServiceRepository(gdb),
		Results:  analysisrepo.NewResultRepository(gdb),
		Patients: patientrepo.NewPatientRepository(gdb),
		Settings: settingStore,
		System:   systemrepo.NewSystemRepository(gdb),
	}, files, selections)

	r := gin.New()
	NewRouter(appModules, appService).Init(r)
	return r, gdb
}

func login(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(fmt.Sprintf(`{"username":%q,"password":"password"}`, username)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.AccessToken
}

func do(r *gin.Engine, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// 测试内容：验证核心 API 路由被正确注册。
func TestInitRouter_RegistersCoreRoutes(t *testing.T) {
	r, _ := setupTestRouter(t)

	wants := []string{
		"GET /ping",
		"POST /token",
		"GET /verify-token",
		"GET /users/me",
		"PUT /users/:id",
		"POST /images/",
		"POST /images/batch-upload",
		"GET /images/:id/base64",
		"POST /images/selection",
		"DELETE /images/selection/:token",
		"GET /services/:id",
		"DELETE /services/:id/results/:image_id",
		"DELETE /patients/:id",
		"GET /admin/stats",
		"PATCH /admin/settings",
	}

	have := make(map[string]bool)
	for _, route := range r.Routes() {
		have[route.Method+" "+route.Path] = true
	}
	for _, want := range wants {
		assert.True(t, have[want], "缺少路由: %s", want)
	}
}

// 测试内容：ping 公开可访问，受保护接口未认证时返回 401，普通用户访问管理接口返回 403。
func TestRouter_AuthBoundaries(t *testing.T) {
	r, gdb := setupTestRouter(t)
	testutils.CreateUser(t, gdb, "alice", consts.RoleUser)

	w := do(r, http.MethodGet, "/ping", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ping":true}`, w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/images/", "", nil, "").Code)

	token := login(t, r, "alice")
	w = do(r, http.MethodGet, "/users/me", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/admin/stats", token, nil, "").Code)
}

// 测试内容：上传图片、注册测量服务、两次分析（第二次命中缓存），外部服务只被调用一次。
func TestRouter_UploadAndAnalyze(t *testing.T) {
	r, gdb := setupTestRouter(t)
	testutils.CreateUser(t, gdb, "root", consts.RoleAdmin)
	token := login(t, r, "root")

	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value": 42}`))
	}))
	t.Cleanup(upstream.Close)

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	part, err := mw.CreateFormFile("file", "scan.png")
	require.NoError(t, err)
	_, err = part.Write(testutils.MinimalPNG(t, 4, 4, 1))
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("title", "chest"))
	require.NoError(t, mw.Close())

	w := do(r, http.MethodPost, "/images/", token, &form, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var uploaded struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploaded))

	body := bytes.NewBufferString(fmt.Sprintf(`{"name":"measure","url":%q,"result_type":"measurement"}`, upstream.URL))
	w = do(r, http.MethodPost, "/services/", token, body, "application/json")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	path := fmt.Sprintf("/services/%d?image_id=%d", created.ID, uploaded.ID)
	w = do(r, http.MethodGet, path, token, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"value": 42}`, w.Body.String())
	assert.Equal(t, "false", w.Header().Get(analysishandler.CacheHeader))

	w = do(r, http.MethodGet, path, token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get(analysishandler.CacheHeader))
	assert.Equal(t, int32(1), hits.Load())

	w = do(r, http.MethodGet, "/admin/stats", token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"result_count":1`)
}
