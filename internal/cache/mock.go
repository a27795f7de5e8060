package cache

import (
	"context"
	"sync"
)

// MockPageCache provides an in-memory implementation for testing when Redis
// is not available.
type MockPageCache struct {
	mu    sync.Mutex
	pages map[string][]byte
}

func NewMockPageCache() *MockPageCache {
	return &MockPageCache{pages: make(map[string][]byte)}
}

func (m *MockPageCache) Close() error {
	return nil
}

func (m *MockPageCache) GetPage(ctx context.Context, path string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	html, ok := m.pages[path]
	return html, ok, nil
}

func (m *MockPageCache) SetPage(ctx context.Context, path string, html []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[path] = html
	return nil
}

func (m *MockPageCache) Invalidate(ctx context.Context, paths ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, path := range paths {
		delete(m.pages, path)
	}
	return nil
}

func (m *MockPageCache) PurgeAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = make(map[string][]byte)
	return nil
}

// Cached reports whether a page is currently stored. Test helper.
func (m *MockPageCache) Cached(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.pages[path]
	return ok
}
