package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// Object is a stored blob held by MemoryStore.
type Object struct {
	Data        []byte
	ContentType string
}

// MemoryStore keeps objects in process memory. It backs local development
// without a bucket and the HTTP tests.
type MemoryStore struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string]Object
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{BaseURL: baseURL, objects: make(map[string]Object)}
}

func (m *MemoryStore) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = Object{Data: buf.Bytes(), ContentType: contentType}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MemoryStore) URL(key string) string {
	return m.BaseURL + "/" + key
}

// Get returns a stored object.
func (m *MemoryStore) Get(key string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.objects[key]
	return o, ok
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
