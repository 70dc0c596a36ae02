// Package invoker 负责对外部分析服务发起一次同步调用。
package invoker

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxResponse = 50 << 20
	formField          = "file"
)

// RawResponse 未经解释的上游响应。
type RawResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Settings 运行时可调的调用参数，AppService 满足该接口。
type Settings interface {
	GetInt(key string) int
	GetInt64(key string) int64
}

type Invoker struct {
	client   *http.Client
	settings Settings
}

func New(settings Settings) *Invoker {
	return NewWithClient(&http.Client{}, settings)
}

func NewWithClient(client *http.Client, settings Settings) *Invoker {
	return &Invoker{client: client, settings: settings}
}

func (i *Invoker) timeout() time.Duration {
	if i.settings == nil {
		return defaultTimeout
	}
	if sec := i.settings.GetInt(consts.ConfigAnalysisTimeoutSeconds); sec > 0 {
		return time.Duration(sec) * time.Second
	}
	return defaultTimeout
}

func (i *Invoker) maxResponse() int64 {
	if i.settings == nil {
		return defaultMaxResponse
	}
	if mb := i.settings.GetInt64(consts.ConfigAnalysisMaxResponseSize); mb > 0 {
		return mb << 20
	}
	return defaultMaxResponse
}

// Invoke 以 multipart 的 file 字段上传图片，不重试。
// 连接失败、超时、非 2xx 都返回 upstream_unavailable；响应体超限返回 invalid_payload。
func (i *Invoker) Invoke(ctx context.Context, svc *model.Service, filename string, image []byte) (*RawResponse, error) {
	body, contentType, err := buildForm(filename, image)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.URL, body)
	if err != nil {
		return nil, common.NewUpstreamUnavailableError("分析服务地址无效", err)
	}
	req.Header.Set("Content-Type", contentType)

	entry := log.WithFields(log.Fields{"service": svc.Name, "url": svc.URL})
	start := time.Now()

	resp, err := i.client.Do(req)
	if err != nil {
		entry.WithError(err).Warn("analysis service call failed")
		return nil, common.NewUpstreamUnavailableError("分析服务不可用", err)
	}
	defer resp.Body.Close()

	limit := i.maxResponse()
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		entry.WithError(err).Warn("analysis service response read failed")
		return nil, common.NewUpstreamUnavailableError("读取分析服务响应失败", err)
	}

	entry = entry.WithFields(log.Fields{"status": resp.StatusCode, "bytes": len(data), "latency": time.Since(start).String()})
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		entry.Warn("analysis service returned error status")
		return nil, common.NewUpstreamUnavailableError(fmt.Sprintf("分析服务返回状态 %d", resp.StatusCode), nil)
	}
	if int64(len(data)) > limit {
		entry.Warn("analysis service response too large")
		return nil, common.NewInvalidPayloadError("分析服务返回内容过大")
	}
	entry.Debug("analysis service call done")

	return &RawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

func buildForm(filename string, image []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(formField, filepath.Base(filename))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(image); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
