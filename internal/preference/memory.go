package preference

import (
	"context"
	"sync"
)

// MemoryPersister はプロセス内だけで値を保持する Persister です。
// 永続化先を用意できないとき (ストレージファイルが開けないなど) の代替に使います。
type MemoryPersister struct {
	mu    sync.Mutex
	items map[string][]byte
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{items: make(map[string][]byte)}
}

func (m *MemoryPersister) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryPersister) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), value...)
	return nil
}
