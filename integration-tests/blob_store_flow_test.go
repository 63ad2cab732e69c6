package integration_tests

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vcscsvcscs/blobstore/pkg/blobstore"
	"go.uber.org/zap"
)

// TestBlobStoreFlow exercises the full facade contract against the in-memory
// implementation: upload, metadata, listing, download and deletion behave as
// one coherent store.
func TestBlobStoreFlow(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	var store blobstore.BlobStorage = blobstore.NewMockBlobStorage(logger)

	userID := uuid.New()
	blobName := fmt.Sprintf("reports/%s/summary.pdf", userID)
	payload := []byte("%PDF-1.7 test report")

	t.Run("Complete blob lifecycle", func(t *testing.T) {
		t.Log("Step 1: Uploading report")
		require.NoError(t, store.Upload(ctx, blobName, bytes.NewReader(payload), "application/pdf"))

		t.Log("Step 2: Verifying metadata")
		info, err := store.GetInfo(ctx, blobName)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, blobName, info.Name)
		assert.Equal(t, int64(len(payload)), info.SizeBytes)
		assert.Equal(t, "application/pdf", info.ContentType)

		t.Log("Step 3: Listing by prefix")
		listed, err := store.List(ctx, fmt.Sprintf("reports/%s/", userID))
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, blobName, listed[0].Name)

		t.Log("Step 4: Downloading and comparing")
		data, err := store.DownloadBytes(ctx, blobName)
		require.NoError(t, err)
		assert.Equal(t, payload, data)

		var buf bytes.Buffer
		require.NoError(t, store.Download(ctx, blobName, &buf))
		assert.Equal(t, payload, buf.Bytes())

		t.Log("Step 5: Deleting and verifying absence")
		deleted, err := store.Delete(ctx, blobName)
		require.NoError(t, err)
		assert.True(t, deleted)

		exists, err := store.Exists(ctx, blobName)
		require.NoError(t, err)
		assert.False(t, exists)

		deleted, err = store.Delete(ctx, blobName)
		require.NoError(t, err)
		assert.False(t, deleted, "second delete reports nothing removed")
	})
}

// TestBlobStoreFileTransfers covers the local-file paths of the facade.
func TestBlobStoreFileTransfers(t *testing.T) {
	ctx := context.Background()

	var store blobstore.BlobStorage = blobstore.NewMockBlobStorage(zap.NewNop())

	dir := t.TempDir()
	src := filepath.Join(dir, "in", "audio.wav")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0o755))
	require.NoError(t, os.WriteFile(src, []byte("RIFF fake audio"), 0o600))

	require.NoError(t, store.UploadFromFile(ctx, "audio/audio.wav", src, "audio/wav"))

	dst := filepath.Join(dir, "out", "nested", "audio.wav")
	require.NoError(t, store.DownloadToFile(ctx, "audio/audio.wav", dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF fake audio"), data)
}

// TestBlobStoreConcurrentAccess checks that concurrent writers and deleters
// on one name cannot corrupt the store; the surviving state is one of the two
// racing outcomes.
func TestBlobStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMockBlobStorage(zap.NewNop())

	const workers = 8

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(2)
		go func() {
			defer wg.Done()
			payload := []byte(fmt.Sprintf("writer-%d", i))
			_ = store.Upload(ctx, "contended", bytes.NewReader(payload), "")
		}()
		go func() {
			defer wg.Done()
			_, _ = store.Delete(ctx, "contended")
		}()
	}
	wg.Wait()

	exists, err := store.Exists(ctx, "contended")
	require.NoError(t, err)
	if exists {
		data, err := store.DownloadBytes(ctx, "contended")
		require.NoError(t, err)
		assert.Regexp(t, `^writer-\d+$`, string(data))
	}
}
