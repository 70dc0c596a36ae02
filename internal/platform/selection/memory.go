package selection

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	ids       []uint
	expiresAt time.Time
}

// Memory 进程内实现，后台协程定期清理过期项。
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

func NewMemory(ttl time.Duration) *Memory {
	return newMemory(ttl, time.Now, time.Minute)
}

func newMemory(ttl time.Duration, now func() time.Time, sweepEvery time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Memory{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go m.janitor(sweepEvery)
	return m
}

func (m *Memory) Create(_ context.Context, ids []uint) (string, error) {
	token := Token(ids)
	stored := append([]uint(nil), ids...)

	m.mu.Lock()
	m.entries[token] = memoryEntry{ids: stored, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return token, nil
}

func (m *Memory) Consume(_ context.Context, token string) ([]uint, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[token]
	if !ok {
		return nil, false, nil
	}
	delete(m.entries, token)
	if !m.now().Before(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.ids, true, nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) sweep() {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, token)
		}
	}
}

func (m *Memory) janitor(every time.Duration) {
	defer close(m.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

// Close 停止清理协程，可重复调用。
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done
	return nil
}
