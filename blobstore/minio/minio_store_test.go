package minio

import (
	"context"
	"os"
	"testing"

	"github.com/hupe1980/kanjigo/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelName(t *testing.T) {
	assert.Equal(t, "CURRENT", relName("catalog/", "catalog/CURRENT"))
	assert.Equal(t, "CURRENT", relName("catalog", "catalog/CURRENT"))
	assert.Equal(t, "a/b", relName("", "a/b"))
	assert.Equal(t, "", relName("catalog/", "catalog/"))
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}

	ctx := context.Background()
	store, err := Dial(ctx, Config{
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}, "test-kanjigo", "test-prefix/")
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.bin", data))

	got, err := blobstore.ReadAll(ctx, store, "test.bin")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.bin")

	require.NoError(t, store.Delete(ctx, "test.bin"))
	require.NoError(t, store.Delete(ctx, "test.bin"))

	_, err = store.Open(ctx, "test.bin")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
