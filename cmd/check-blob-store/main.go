// Command check-blob-store verifies that a storage account, container and
// managed identity are wired up correctly by running one full round-trip
// against the real service: upload, exists, getinfo, download, list, delete.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vcscsvcscs/blobstore/internal/config"
	"github.com/vcscsvcscs/blobstore/pkg/blobstore"
)

func main() {
	// Initialize logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration. Set AZURE_STORAGE_ACCOUNT_NAME and AZURE_STORAGE_CONTAINER", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger.Info("=== Testing Blob Storage Service ===",
		zap.String("account", cfg.Storage.AccountName),
		zap.String("container", cfg.Storage.ContainerName),
	)

	if err := checkBlobStore(ctx, cfg, logger); err != nil {
		logger.Fatal("Blob storage check failed", zap.Error(err))
	}

	logger.Info("✅ Blob storage check passed")
}

func checkBlobStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store, err := blobstore.NewService(cfg.Storage.Options(), logger)
	if err != nil {
		return fmt.Errorf("failed to create blob storage service: %w", err)
	}

	blobName := fmt.Sprintf("healthcheck/%s", uuid.New().String())
	payload := []byte(fmt.Sprintf("blob store check at %s", time.Now().UTC().Format(time.RFC3339)))

	logger.Info("Testing upload", zap.String("blob_name", blobName))
	if err := store.Upload(ctx, blobName, bytes.NewReader(payload), "text/plain"); err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	exists, err := store.Exists(ctx, blobName)
	if err != nil {
		return fmt.Errorf("exists check failed: %w", err)
	}
	if !exists {
		return fmt.Errorf("uploaded blob %q not found", blobName)
	}

	info, err := store.GetInfo(ctx, blobName)
	if err != nil {
		return fmt.Errorf("getinfo failed: %w", err)
	}
	if info == nil {
		return fmt.Errorf("getinfo reported blob %q absent", blobName)
	}
	if info.SizeBytes != int64(len(payload)) {
		return fmt.Errorf("size mismatch: uploaded %d bytes, reported %d", len(payload), info.SizeBytes)
	}
	logger.Info("Blob properties verified",
		zap.Int64("size_bytes", info.SizeBytes),
		zap.String("content_type", info.ContentType),
		zap.String("etag", info.ETag),
	)

	downloaded, err := store.DownloadBytes(ctx, blobName)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	if !bytes.Equal(downloaded, payload) {
		return fmt.Errorf("downloaded content does not match uploaded payload")
	}

	listed, err := store.List(ctx, "healthcheck/")
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}
	logger.Info("Listed healthcheck blobs", zap.Int("count", len(listed)))

	deleted, err := store.Delete(ctx, blobName)
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	if !deleted {
		return fmt.Errorf("delete reported blob %q already absent", blobName)
	}

	exists, err = store.Exists(ctx, blobName)
	if err != nil {
		return fmt.Errorf("exists check after delete failed: %w", err)
	}
	if exists {
		return fmt.Errorf("blob %q still present after delete", blobName)
	}

	return nil
}
