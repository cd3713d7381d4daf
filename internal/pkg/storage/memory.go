package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/shandysiswandi/webkit/internal/pkg/goerror"
)

// Memory is an in-process Reader, handy for tests and local development.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

// Put stores data under bucket/key.
func (m *Memory) Put(bucket, key string, data []byte) {
	m.mu.Lock()
	m.objects[bucket+"/"+key] = append([]byte(nil), data...)
	m.mu.Unlock()
}

func (m *Memory) lookup(bucket, key string) ([]byte, ObjectInfo, error) {
	m.mu.RLock()
	data, ok := m.objects[bucket+"/"+key]
	m.mu.RUnlock()
	if !ok {
		return nil, ObjectInfo{}, goerror.NewNotFound(fmt.Sprintf("storage: %s/%s", bucket, key))
	}
	return data, ObjectInfo{
		Bucket:      bucket,
		Key:         key,
		Size:        int64(len(data)),
		ContentType: http.DetectContentType(data),
	}, nil
}

// GetObject returns a reader over the stored bytes.
func (m *Memory) GetObject(_ context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	data, info, err := m.lookup(bucket, key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	return io.NopCloser(bytes.NewReader(data)), info, nil
}

// StatObject returns metadata for the stored bytes.
func (m *Memory) StatObject(_ context.Context, bucket, key string) (ObjectInfo, error) {
	_, info, err := m.lookup(bucket, key)
	return info, err
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}
