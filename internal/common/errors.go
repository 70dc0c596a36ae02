package common

import "errors"

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeForbidden    ErrorCode = "forbidden"
	ErrorCodeConflict     ErrorCode = "conflict"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeInternal     ErrorCode = "internal"

	// 分析服务相关
	ErrorCodeInvalidPayload      ErrorCode = "invalid_payload"
	ErrorCodeUnknownResultType   ErrorCode = "unknown_result_type"
	ErrorCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func NewServiceError(code ErrorCode, message string) error {
	return &ServiceError{Code: code, Message: message}
}

// WrapServiceError 保留底层错误以便日志记录，对外只暴露 message。
func WrapServiceError(code ErrorCode, message string, err error) error {
	return &ServiceError{Code: code, Message: message, Err: err}
}

func NewValidationError(message string) error {
	return NewServiceError(ErrorCodeValidation, message)
}

func NewUnauthorizedError(message string) error {
	return NewServiceError(ErrorCodeUnauthorized, message)
}

func NewForbiddenError(message string) error {
	return NewServiceError(ErrorCodeForbidden, message)
}

func NewConflictError(message string) error {
	return NewServiceError(ErrorCodeConflict, message)
}

func NewNotFoundError(message string) error {
	return NewServiceError(ErrorCodeNotFound, message)
}

func NewInternalError(message string) error {
	return NewServiceError(ErrorCodeInternal, message)
}

func NewInvalidPayloadError(message string) error {
	return NewServiceError(ErrorCodeInvalidPayload, message)
}

func NewUnknownResultTypeError(message string) error {
	return NewServiceError(ErrorCodeUnknownResultType, message)
}

func NewUpstreamUnavailableError(message string, err error) error {
	return WrapServiceError(ErrorCodeUpstreamUnavailable, message, err)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

// HasCode 判断 err 链中是否存在指定错误码的 ServiceError。
func HasCode(err error, code ErrorCode) bool {
	serviceErr, ok := AsServiceError(err)
	return ok && serviceErr.Code == code
}
