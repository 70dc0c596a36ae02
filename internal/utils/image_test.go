package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// 测试内容：验证 PNG 与 JPEG 可被识别并返回尺寸与扩展名。
func TestInspectImage(t *testing.T) {
	info, err := InspectImage(encodePNG(t, 3, 2))
	require.NoError(t, err)
	assert.Equal(t, "png", info.Format)
	assert.Equal(t, "image/png", info.MimeType)
	assert.Equal(t, 3, info.Width)
	assert.Equal(t, 2, info.Height)
	assert.Equal(t, ".png", info.Ext())

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4)), nil))
	info, err = InspectImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, ".jpg", info.Ext())
	assert.Equal(t, "image/jpeg", info.MimeType)
}

// 测试内容：验证非图片内容返回 ErrNotImage。
func TestInspectImage_NotImage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte(`{"value": 42}`), []byte("GIF89a-broken")} {
		_, err := InspectImage(data)
		assert.ErrorIs(t, err, ErrNotImage)
	}
}

// 测试内容：验证扩展名白名单判断。
func TestExtAllowed(t *testing.T) {
	allow := ".jpg, .png,webp"
	assert.True(t, ExtAllowed(".PNG", allow))
	assert.True(t, ExtAllowed("webp", allow))
	assert.False(t, ExtAllowed(".gif", allow))
	assert.False(t, ExtAllowed("", allow))
}
