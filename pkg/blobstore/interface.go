package blobstore

import (
	"context"
	"io"
)

// BlobStorage defines the interface for blob storage operations
// This interface allows for easier testing with mock implementations
type BlobStorage interface {
	Upload(ctx context.Context, name string, body io.Reader, contentType string) error
	UploadFromFile(ctx context.Context, name, localPath, contentType string) error
	Download(ctx context.Context, name string, w io.Writer) error
	DownloadToFile(ctx context.Context, name, localPath string) error
	DownloadBytes(ctx context.Context, name string) ([]byte, error)
	GetInfo(ctx context.Context, name string) (*BlobDescriptor, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, prefix string) ([]BlobDescriptor, error)
}

// Ensure Service implements BlobStorage interface
var _ BlobStorage = (*Service)(nil)
