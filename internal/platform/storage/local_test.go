package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试内容：验证本地存储的写入、读取、重命名与幂等删除。
func TestLocal_Lifecycle(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, l.Write(ctx, "staging/a.bin", []byte("hello")))
	ok, err := l.Exists(ctx, "staging/a.bin")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, l.Rename(ctx, "staging/a.bin", "results/a.bin"))
	ok, _ = l.Exists(ctx, "staging/a.bin")
	assert.False(t, ok)

	data, err := l.Read(ctx, "results/a.bin")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, l.Delete(ctx, "results/a.bin"))
	require.NoError(t, l.Delete(ctx, "results/a.bin"))

	_, err = l.Read(ctx, "results/a.bin")
	assert.ErrorIs(t, err, ErrNotExist)
	assert.ErrorIs(t, l.Rename(ctx, "missing", "other"), ErrNotExist)
}

// 测试内容：验证越界 key 与绝对路径被拒绝。
func TestLocal_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../x", "/etc/passwd", "a/../../x", "", ".."} {
		assert.Error(t, l.Write(ctx, key, []byte("x")), key)
	}
}

// 测试内容：验证存储目录内的符号链接不会被穿透。
func TestLocal_RejectsSymlink(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(base, "link")); err != nil {
		t.Skipf("symlink not supported: %v", err)
	}
	l, err := NewLocal(base)
	require.NoError(t, err)

	assert.Error(t, l.Write(ctx, "link/evil.txt", []byte("x")))
	_, statErr := os.Stat(filepath.Join(outside, "evil.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

// 测试内容：验证 ReadStructured 解码 JSON 并在内容非法时报错。
func TestReadStructured(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, l.Write(ctx, "m.json", []byte(`{"value": 42}`)))
	var v map[string]int
	require.NoError(t, ReadStructured(ctx, l, "m.json", &v))
	assert.Equal(t, 42, v["value"])

	require.NoError(t, l.Write(ctx, "bad.json", []byte(`{`)))
	assert.Error(t, ReadStructured(ctx, l, "bad.json", &v))
}

// 测试内容：验证 key 规范化。
func TestCleanKey(t *testing.T) {
	k, err := CleanKey(`images\\2024//a.png`)
	require.NoError(t, err)
	assert.Equal(t, "images/2024/a.png", k)
}
