package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	"ariavt-server/internal/modules/patient/repo"
	patientservice "ariavt-server/internal/modules/patient/service"
	"ariavt-server/internal/platform/access"
	"ariavt-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(h *Handler, user *model.User) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		access.SetActor(c, access.Actor{ID: user.ID, Username: user.Username, Role: user.Role})
		c.Next()
	})
	r.POST("/patients/", h.CreatePatient)
	r.GET("/patients/", h.ListPatients)
	r.GET("/patients/:id", h.GetPatient)
	r.DELETE("/patients/:id", h.DeletePatient)
	return r
}

// 测试内容：创建、重复创建、读取、列表；普通用户删除返回 401，管理员删除后关联图片的 patient_id 被置空。
func TestPatientHandler_Flow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb := testutils.SetupDB(t)
	h := New(patientservice.New(repo.NewPatientRepository(gdb)))
	alice := testutils.CreateUser(t, gdb, "alice", consts.RoleUser)
	admin := testutils.CreateUser(t, gdb, "root", consts.RoleAdmin)

	w := httptest.NewRecorder()
	newRouter(h, alice).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/patients/", strings.NewReader(`{"national_id":"P-1"}`)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	newRouter(h, alice).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/patients/", strings.NewReader(`{"national_id":"P-1"}`)))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	newRouter(h, alice).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/patients/", strings.NewReader(`{"national_id":"   "}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var patient model.Patient
	require.NoError(t, gdb.Where("national_id = ?", "P-1").First(&patient).Error)
	image := testutils.CreateImage(t, gdb, alice.ID, "")
	require.NoError(t, gdb.Model(image).Update("patient_id", patient.ID).Error)

	w = httptest.NewRecorder()
	newRouter(h, alice).ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/patients/%d", patient.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"national_id":"P-1"`)

	w = httptest.NewRecorder()
	newRouter(h, alice).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/patients/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = httptest.NewRecorder()
	newRouter(h, alice).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/patients/%d", patient.ID), nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	newRouter(h, admin).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/patients/%d", patient.ID), nil))
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded model.Image
	require.NoError(t, gdb.First(&reloaded, image.ID).Error)
	assert.Nil(t, reloaded.PatientID)

	w = httptest.NewRecorder()
	newRouter(h, alice).ServeHTTP(w, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/patients/%d", patient.ID), nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
