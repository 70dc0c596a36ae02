package middleware

import (
	"ariavt-server/internal/consts"
	"ariavt-server/internal/platform/service"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// isUploadRequest 上传接口由 UploadBodyLimitMiddleware 单独限制。
func isUploadRequest(r *http.Request) bool {
	if r.Method != http.MethodPost {
		return false
	}
	path := strings.TrimSuffix(r.URL.Path, "/")
	return path == "/images" || path == "/images/batch-upload"
}

// BodyLimitMiddleware 限制请求体大小
func BodyLimitMiddleware(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isUploadRequest(c.Request) {
			c.Next()
			return
		}

		maxSizeMB := appService.GetInt(consts.ConfigMaxRequestBodySize)
		if maxSizeMB <= 0 {
			// 如果未设置或为0，默认 2MB
			maxSizeMB = 2
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(maxSizeMB)<<20)
		c.Next()
	}
}

func limitUpload(c *gin.Context, maxBytes int64) {
	if c.Request.ContentLength > maxBytes && c.Request.ContentLength != -1 {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("请求体不能超过 %dMB", maxBytes>>20)})
		c.Abort()
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	c.Next()
}

// UploadBodyLimitMiddleware 限制单文件上传接口的请求体大小
func UploadBodyLimitMiddleware(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 预留 1MB 给表单字段与 multipart 边界
		limitUpload(c, appService.MaxUploadBytes()+1<<20)
	}
}

// BatchUploadBodyLimitMiddleware 批量上传按单文件上限乘以批量文件数限制
func BatchUploadBodyLimitMiddleware(appService *service.AppService) gin.HandlerFunc {
	return func(c *gin.Context) {
		files := appService.GetInt64(consts.ConfigBatchUploadMaxFiles)
		if files <= 0 {
			files = 1
		}
		limitUpload(c, appService.MaxUploadBytes()*files+1<<20)
	}
}
