package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"go.uber.org/zap"
)

// Service is a container-bound facade over Azure Blob Storage. It is built
// once, holds no mutable state and is safe for unsynchronized concurrent use.
// Retry, backoff and token refresh are left entirely to the SDK.
type Service struct {
	client        containerClient
	containerName string
	logger        *zap.Logger
}

// NewService creates a Service bound to one container of one storage account,
// authenticated through the identity mode resolved from opts (see
// Options.CredentialRequest). It fails fast on missing required options and
// performs no network activity; container existence is discovered lazily on
// the first operation.
func NewService(opts Options, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	client, err := newAzureContainerClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	logger.Info("blob storage service created",
		zap.String("account", opts.AccountName),
		zap.String("container", opts.ContainerName),
		zap.String("credential_mode", string(opts.CredentialRequest().Mode)),
	)

	return &Service{
		client:        client,
		containerName: opts.ContainerName,
		logger:        logger,
	}, nil
}

// Upload streams body to the named blob, unconditionally overwriting any
// existing blob with that name. contentType is set as the blob's content type
// header when non-empty.
func (s *Service) Upload(ctx context.Context, name string, body io.Reader, contentType string) error {
	if err := requireArg("blob name", name); err != nil {
		return err
	}

	if err := s.client.Upload(ctx, name, body, contentType); err != nil {
		s.logger.Error("failed to upload blob",
			zap.String("blob_name", name),
			zap.Error(err),
		)
		return fmt.Errorf("upload blob %q: %w", name, err)
	}

	s.logger.Info("blob uploaded",
		zap.String("blob_name", name),
		zap.String("container", s.containerName),
	)

	return nil
}

// UploadFromFile uploads the content of a local file. The file is opened only
// for the duration of the transfer; a missing file fails with the standard
// fs.ErrNotExist chain before any network activity.
func (s *Service) UploadFromFile(ctx context.Context, name, localPath, contentType string) error {
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

	return s.Upload(ctx, name, f, contentType)
}

// Download streams the named blob's full content into w. A missing blob
// surfaces the storage service's own not-found error unchanged.
func (s *Service) Download(ctx context.Context, name string, w io.Writer) error {
	if err := requireArg("blob name", name); err != nil {
		return err
	}

	body, err := s.client.Download(ctx, name)
	if err != nil {
		s.logger.Error("failed to download blob",
			zap.String("blob_name", name),
			zap.Error(err),
		)
		return fmt.Errorf("download blob %q: %w", name, err)
	}
	defer body.Close()

	n, err := io.Copy(w, body)
	if err != nil {
		return fmt.Errorf("copy blob %q content: %w", name, err)
	}

	s.logger.Info("blob downloaded",
		zap.String("blob_name", name),
		zap.Int64("size_bytes", n),
	)

	return nil
}

// DownloadToFile downloads the named blob into a local file, creating any
// missing parent directories and truncating an existing file. A failed or
// cancelled transfer leaves the partially written file in place.
func (s *Service) DownloadToFile(ctx context.Context, name, localPath string) error {
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

	return s.Download(ctx, name, f)
}

// DownloadBytes downloads the named blob's full content into memory. No size
// limit is enforced; very large blobs are the caller's responsibility.
func (s *Service) DownloadBytes(ctx context.Context, name string) ([]byte, error) {
	if err := requireArg("blob name", name); err != nil {
		return nil, err
	}

	body, err := s.client.Download(ctx, name)
	if err != nil {
		s.logger.Error("failed to download blob",
			zap.String("blob_name", name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("download blob %q: %w", name, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read blob %q content: %w", name, err)
	}

	s.logger.Info("blob downloaded",
		zap.String("blob_name", name),
		zap.Int("size_bytes", len(data)),
	)

	return data, nil
}

// GetInfo returns the named blob's descriptor, or (nil, nil) if the blob does
// not exist. Absence is not an error. One GetProperties round-trip.
func (s *Service) GetInfo(ctx context.Context, name string) (*BlobDescriptor, error) {
	if err := requireArg("blob name", name); err != nil {
		return nil, err
	}

	resp, err := s.client.Properties(ctx, name)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blob %q properties: %w", name, err)
	}

	d := descriptorFromProperties(name, resp)

	return &d, nil
}

// Exists reports whether the named blob exists. One round-trip, no error on
// absence.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	if err := requireArg("blob name", name); err != nil {
		return false, err
	}

	_, err := s.client.Properties(ctx, name)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check blob %q exists: %w", name, err)
	}

	return true, nil
}

// Delete removes the named blob if present. It returns true when a blob was
// deleted and false when it was already absent; absence is never an error.
func (s *Service) Delete(ctx context.Context, name string) (bool, error) {
	if err := requireArg("blob name", name); err != nil {
		return false, err
	}

	if err := s.client.Delete(ctx, name); err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete blob %q: %w", name, err)
	}

	s.logger.Info("blob deleted",
		zap.String("blob_name", name),
		zap.String("container", s.containerName),
	)

	return true, nil
}

// List returns descriptors for every blob whose name starts with prefix, in
// the storage service's own order. All result pages are drained before
// returning; an empty prefix lists the whole container.
func (s *Service) List(ctx context.Context, prefix string) ([]BlobDescriptor, error) {
	items, err := s.client.List(ctx, prefix)
	if err != nil {
		s.logger.Error("failed to list blobs",
			zap.String("prefix", prefix),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list blobs with prefix %q: %w", prefix, err)
	}

	descriptors := make([]BlobDescriptor, 0, len(items))
	for _, item := range items {
		descriptors = append(descriptors, descriptorFromItem(item))
	}

	s.logger.Info("blobs listed",
		zap.String("prefix", prefix),
		zap.Int("count", len(descriptors)),
	)

	return descriptors, nil
}

// requireArg rejects blank call parameters before any network activity.
func requireArg(what, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, what)
	}
	return nil
}
