package s3

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/hupe1980/kanjigo/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_S3Store(t *testing.T) {
	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("Skipping S3 integration test: S3_BUCKET not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("test-kanjigo-%d/", time.Now().UnixNano())
	store, err := New(ctx, bucket, WithPrefix(prefix))
	require.NoError(t, err)

	t.Run("Put and Open", func(t *testing.T) {
		name := "test.blob"
		data := make([]byte, 1024*1024)
		_, _ = rand.Read(data)

		require.NoError(t, store.Put(ctx, name, data))

		blobs, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Contains(t, blobs, name)

		got, err := blobstore.ReadAll(ctx, store, name)
		require.NoError(t, err)
		assert.Equal(t, data, got)

		require.NoError(t, store.Delete(ctx, name))
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := store.Open(ctx, "nonexistent")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})
}
