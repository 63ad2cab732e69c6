package blobstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// MockBlobStorage is an in-memory implementation of BlobStorage for testing.
// It mirrors the Service's validation and absence semantics so callers can be
// exercised without a storage account.
type MockBlobStorage struct {
	mu     sync.RWMutex
	blobs  map[string]mockBlob
	etag   int
	logger *zap.Logger
}

type mockBlob struct {
	data         []byte
	contentType  string
	lastModified time.Time
	etag         string
}

// Ensure MockBlobStorage implements BlobStorage interface
var _ BlobStorage = (*MockBlobStorage)(nil)

// NewMockBlobStorage creates a new mock blob storage client
func NewMockBlobStorage(logger *zap.Logger) *MockBlobStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MockBlobStorage{
		blobs:  make(map[string]mockBlob),
		logger: logger,
	}
}

// Upload stores body under name, overwriting any existing entry.
func (m *MockBlobStorage) Upload(ctx context.Context, name string, body io.Reader, contentType string) error {
	if err := requireArg("blob name", name); err != nil {
		return err
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read upload body: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.etag++
	m.blobs[name] = mockBlob{
		data:         data,
		contentType:  contentType,
		lastModified: time.Now().UTC(),
		etag:         fmt.Sprintf("0x%08X", m.etag),
	}

	m.logger.Info("mock: blob uploaded",
		zap.String("blob_name", name),
		zap.Int("size_bytes", len(data)),
	)

	return nil
}

// UploadFromFile uploads the content of a local file.
func (m *MockBlobStorage) UploadFromFile(ctx context.Context, name, localPath, contentType string) error {
	if err := requireArg("blob name", name); err != nil {
		return err
	}
	if err := requireArg("local path", localPath); err != nil {
		return err
	}

	f, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("open local file %q: %w", localPath, err)
	}
	defer f.Close()

	return m.Upload(ctx, name, f, contentType)
}

// Download writes the stored content to w, or fails if name is absent.
func (m *MockBlobStorage) Download(ctx context.Context, name string, w io.Writer) error {
	data, err := m.DownloadBytes(ctx, name)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// DownloadToFile downloads the stored content into a local file.
func (m *MockBlobStorage) DownloadToFile(ctx context.Context, name, localPath string) error {
	if err := requireArg("blob name", name); err != nil {
		return err
	}
	if err := requireArg("local path", localPath); err != nil {
		return err
	}

	if dir := filepath.Dir(localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent directories for %q: %w", localPath, err)
		}
	}

	f, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create local file %q: %w", localPath, err)
	}
	defer f.Close()

	return m.Download(ctx, name, f)
}

// DownloadBytes returns a copy of the stored content, or fails if name is
// absent.
func (m *MockBlobStorage) DownloadBytes(ctx context.Context, name string) ([]byte, error) {
	if err := requireArg("blob name", name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blobs[name]
	if !ok {
		return nil, fmt.Errorf("download blob %q: blob not found", name)
	}

	return bytes.Clone(b.data), nil
}

// GetInfo returns the descriptor for name, or (nil, nil) if absent.
func (m *MockBlobStorage) GetInfo(ctx context.Context, name string) (*BlobDescriptor, error) {
	if err := requireArg("blob name", name); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blobs[name]
	if !ok {
		return nil, nil
	}

	return &BlobDescriptor{
		Name:         name,
		SizeBytes:    int64(len(b.data)),
		LastModified: b.lastModified,
		ContentType:  b.contentType,
		ETag:         b.etag,
	}, nil
}

// Exists reports whether name is present.
func (m *MockBlobStorage) Exists(ctx context.Context, name string) (bool, error) {
	if err := requireArg("blob name", name); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.blobs[name]

	return ok, nil
}

// Delete removes name if present, reporting whether anything was deleted.
func (m *MockBlobStorage) Delete(ctx context.Context, name string) (bool, error) {
	if err := requireArg("blob name", name); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.blobs[name]
	delete(m.blobs, name)

	return ok, nil
}

// List returns descriptors for every stored name starting with prefix, in
// lexicographic order like the real service.
func (m *MockBlobStorage) List(ctx context.Context, prefix string) ([]BlobDescriptor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	descriptors := make([]BlobDescriptor, 0, len(names))
	for _, name := range names {
		b := m.blobs[name]
		descriptors = append(descriptors, BlobDescriptor{
			Name:         name,
			SizeBytes:    int64(len(b.data)),
			LastModified: b.lastModified,
			ContentType:  b.contentType,
			ETag:         b.etag,
		})
	}

	return descriptors, nil
}

// Clear removes all stored blobs.
func (m *MockBlobStorage) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs = make(map[string]mockBlob)
}

// Len returns the number of stored blobs.
func (m *MockBlobStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.blobs)
}
