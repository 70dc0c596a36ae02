package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrNotImage = errors.New("not a decodable image")

// ImageInfo 栅格图片的基础信息
type ImageInfo struct {
	Format   string // png, jpeg, gif, bmp, tiff, webp
	MimeType string
	Width    int
	Height   int
}

// Ext 返回带点的扩展名，jpeg 统一为 .jpg。
func (i ImageInfo) Ext() string {
	if i.Format == "jpeg" {
		return ".jpg"
	}
	return "." + i.Format
}

// InspectImage 解析图片头部，无法识别为已注册的栅格格式时返回 ErrNotImage。
func InspectImage(data []byte) (ImageInfo, error) {
	if len(data) == 0 {
		return ImageInfo{}, ErrNotImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ImageInfo{}, ErrNotImage
	}

	mime := mimetype.Detect(data).String()
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/" + format
	}
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}

	return ImageInfo{Format: format, MimeType: mime, Width: cfg.Width, Height: cfg.Height}, nil
}

// NormalizeExt 统一扩展名为小写且带点。
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// ExtAllowed 判断扩展名是否在逗号分隔的白名单内。
func ExtAllowed(ext string, allowList string) bool {
	ext = NormalizeExt(ext)
	for _, item := range strings.Split(allowList, ",") {
		if NormalizeExt(item) == ext && ext != "" {
			return true
		}
	}
	return false
}
