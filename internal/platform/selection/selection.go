package selection

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

const tokenLength = 8

const DefaultTTL = 10 * time.Minute

// Store 暂存一批资源 id，凭 token 一次性取回。
type Store interface {
	Create(ctx context.Context, ids []uint) (string, error)
	// Consume 取回并删除；token 不存在或已过期时 ok 为 false。
	Consume(ctx context.Context, token string) (ids []uint, ok bool, err error)
}

// Token 相同的 id 序列总是得到相同的 token。
func Token(ids []uint) string {
	sum := sha256.Sum256([]byte(joinIDs(ids)))
	return hex.EncodeToString(sum[:])[:tokenLength]
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

func parseIDs(s string) ([]uint, error) {
	if s == "" {
		return []uint{}, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(n))
	}
	return ids, nil
}
