package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ariavt-server/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// 测试内容：验证各类错误码映射到对应的 HTTP 状态码。
func TestServiceErrorStatus(t *testing.T) {
	cases := map[common.ErrorCode]int{
		common.ErrorCodeValidation:          http.StatusBadRequest,
		common.ErrorCodeUnauthorized:        http.StatusUnauthorized,
		common.ErrorCodeForbidden:           http.StatusForbidden,
		common.ErrorCodeConflict:            http.StatusConflict,
		common.ErrorCodeNotFound:            http.StatusNotFound,
		common.ErrorCodeInvalidPayload:      http.StatusUnprocessableEntity,
		common.ErrorCodeUnknownResultType:   http.StatusForbidden,
		common.ErrorCodeUpstreamUnavailable: http.StatusBadGateway,
		common.ErrorCodeInternal:            http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ServiceErrorStatus(code), "code=%s", code)
	}
}

// 测试内容：验证非 ServiceError 返回 500 与兜底文案。
func TestWriteServiceError_Fallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteServiceError(c, errors.New("db down"), "服务器错误")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"服务器错误"}`, w.Body.String())
}

// 测试内容：验证 ServiceError 使用自身文案输出。
func TestWriteServiceError_ServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteServiceError(c, common.NewInvalidPayloadError("返回内容不是有效图片"), "服务器错误")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"error":"返回内容不是有效图片"}`, w.Body.String())
}
