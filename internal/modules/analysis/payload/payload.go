// Package payload 定义分析结果的两种形态，并负责按声明类型解释原始字节。
package payload

import (
	"ariavt-server/internal/common"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/utils"
	"bytes"
	"encoding/json"
	"fmt"
)

const measurementContentType = "application/json"

// Payload 只有 Image 与 Measurement 两种实现。
type Payload interface {
	Kind() consts.ResultType
	Bytes() []byte
	ContentType() string
	// Ext 持久化时使用的文件后缀，带点
	Ext() string

	sealed()
}

type Image struct {
	data []byte
	info utils.ImageInfo
}

func (p *Image) Kind() consts.ResultType { return consts.ResultTypeImage }
func (p *Image) Bytes() []byte           { return p.data }
func (p *Image) ContentType() string     { return p.info.MimeType }
func (p *Image) Ext() string             { return p.info.Ext() }
func (p *Image) Info() utils.ImageInfo   { return p.info }
func (p *Image) sealed()                 {}

// Measurement 结构化结果，原样保存服务返回的 JSON。
type Measurement struct {
	data json.RawMessage
}

func (p *Measurement) Kind() consts.ResultType { return consts.ResultTypeMeasurement }
func (p *Measurement) Bytes() []byte           { return p.data }
func (p *Measurement) ContentType() string     { return measurementContentType }
func (p *Measurement) Ext() string             { return ".json" }
func (p *Measurement) sealed()                 {}

// Interpret 按声明的结果类型解释字节：image 必须能解码为已知栅格格式，
// measurement 必须是合法 JSON，其它类型返回 unknown_result_type。
func Interpret(kind consts.ResultType, body []byte) (Payload, error) {
	switch kind {
	case consts.ResultTypeImage:
		info, err := utils.InspectImage(body)
		if err != nil {
			return nil, common.WrapServiceError(common.ErrorCodeInvalidPayload, "分析服务返回的内容不是有效图片", err)
		}
		return &Image{data: body, info: info}, nil
	case consts.ResultTypeMeasurement:
		trimmed := bytes.TrimSpace(body)
		if len(trimmed) == 0 || !json.Valid(trimmed) {
			return nil, common.NewInvalidPayloadError("分析服务返回的内容不是有效 JSON")
		}
		return &Measurement{data: json.RawMessage(trimmed)}, nil
	default:
		return nil, common.NewUnknownResultTypeError(fmt.Sprintf("未知的结果类型: %q", string(kind)))
	}
}

// Revalidate 对已构造的 Payload 再走一遍解释，防止绕过 Interpret 构造出非法值。
func Revalidate(p Payload) (Payload, error) {
	if p == nil {
		return nil, common.NewInvalidPayloadError("结果为空")
	}
	return Interpret(p.Kind(), p.Bytes())
}
