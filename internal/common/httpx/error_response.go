package httpx

import (
	"ariavt-server/internal/common"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// WriteServiceError writes a standardized HTTP error response for service-layer errors.
func WriteServiceError(c *gin.Context, err error, fallbackMessage string) {
	if serviceErr, ok := common.AsServiceError(err); ok {
		status := ServiceErrorStatus(serviceErr.Code)
		if status >= http.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Request.URL.Path).Warn("request failed")
		}
		c.JSON(status, gin.H{"error": serviceErr.Message})
		return
	}
	log.WithError(err).WithField("path", c.Request.URL.Path).Error("unexpected error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMessage})
}

func ServiceErrorStatus(code common.ErrorCode) int {
	switch code {
	case common.ErrorCodeValidation:
		return http.StatusBadRequest
	case common.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case common.ErrorCodeForbidden, common.ErrorCodeUnknownResultType:
		return http.StatusForbidden
	case common.ErrorCodeConflict:
		return http.StatusConflict
	case common.ErrorCodeNotFound:
		return http.StatusNotFound
	case common.ErrorCodeInvalidPayload:
		return http.StatusUnprocessableEntity
	case common.ErrorCodeUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
