package storage

import (
	"ariavt-server/internal/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotExist 对象不存在，Read/Rename 在源文件缺失时返回。
var ErrNotExist = errors.New("storage: object does not exist")

// Storage 以相对 key (斜杠分隔) 寻址的文件存储。
// Delete 对不存在的对象是幂等的。
type Storage interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Rename(ctx context.Context, from, to string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// New 按配置创建存储后端。
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocal(cfg.Path)
	case "s3":
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}

// ReadStructured 读取 JSON 对象并解码到 v。
func ReadStructured(ctx context.Context, s Storage, key string, v any) error {
	data, err := s.Read(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// CleanKey 规范化 key，拒绝绝对路径与越界的 "..".
func CleanKey(key string) (string, error) {
	key = strings.ReplaceAll(strings.TrimSpace(key), "\\", "/")
	if key == "" || strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return cleaned, nil
}
