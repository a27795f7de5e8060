package media

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

// MockStore provides an in-memory implementation for testing when S3 is not
// available.
type MockStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string
}

func NewMockStore() *MockStore {
	return &MockStore{
		objects: make(map[string][]byte),
		baseURL: "https://test-bucket.s3.ap-south-1.amazonaws.com/",
	}
}

func (m *MockStore) Upload(ctx context.Context, slug, filename, contentType string, body io.Reader) (*UploadResult, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	key := BuildKey(slug, filename, time.Now())
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()

	return &UploadResult{Key: key, URL: m.baseURL + key}, nil
}

func (m *MockStore) List(ctx context.Context) ([]Object, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	objects := []Object{}
	for key := range m.objects {
		folder, filename := "", key
		if i := strings.IndexByte(key, '/'); i >= 0 {
			folder, filename = key[:i], key[i+1:]
		}
		objects = append(objects, Object{
			Folder:   folder,
			Filename: filename,
			Key:      key,
			URL:      m.baseURL + key,
		})
	}
	return objects, nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}
