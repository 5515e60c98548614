package s3

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/kanjigo/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDDBCommitStore(ddb *mockDDBClient, baseURI string) *DDBCommitStore {
	s3Store := NewStore(new(MockS3Client), "test-bucket", "test/")
	return NewDDBCommitStore(s3Store, ddb, "kanjigo-commits", baseURI)
}

func readCurrent(t *testing.T, s blobstore.BlobStore) string {
	t.Helper()
	data, err := blobstore.ReadAll(context.Background(), s, CurrentName)
	require.NoError(t, err)
	return string(data)
}

func TestDDBCommitStore_FirstCommit(t *testing.T) {
	ctx := context.Background()
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	require.NoError(t, store.Put(ctx, CurrentName, []byte("catalog-00000001.kjc")))
	assert.Equal(t, "catalog-00000001.kjc", readCurrent(t, store))

	v, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestDDBCommitStore_MultipleCommits(t *testing.T) {
	ctx := context.Background()
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	for i := 1; i <= 12; i++ {
		require.NoError(t, store.Put(ctx, CurrentName, []byte(fmt.Sprintf("catalog-%08d.kjc", i))))
	}

	assert.Equal(t, "catalog-00000012.kjc", readCurrent(t, store))
}

func TestDDBCommitStore_ConcurrentCommits(t *testing.T) {
	ctx := context.Background()
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	require.NoError(t, store.Put(ctx, CurrentName, []byte("catalog-00000001.kjc")))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := range 5 {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			err := store.Put(ctx, CurrentName, []byte(fmt.Sprintf("catalog-%08d.kjc", id+2)))
			if err != nil && !errors.Is(err, ErrConcurrentModification) {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Positive(t, successes)
	v, err := store.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1+successes), v)
}

func TestDDBCommitStore_NotFoundBeforeCommit(t *testing.T) {
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	_, err := store.Open(context.Background(), CurrentName)
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestDDBCommitStore_DeleteKeepsCurrent(t *testing.T) {
	ctx := context.Background()
	store := newTestDDBCommitStore(newMockDDBClient(), "s3://test-bucket/test/")

	require.NoError(t, store.Put(ctx, CurrentName, []byte("a")))
	require.NoError(t, store.Delete(ctx, CurrentName))
	assert.Equal(t, "a", readCurrent(t, store))
}

func TestDDBCommitStore_IsolatedNamespaces(t *testing.T) {
	ctx := context.Background()
	ddb := newMockDDBClient()

	store1 := newTestDDBCommitStore(ddb, "s3://bucket-a/path/")
	store2 := newTestDDBCommitStore(ddb, "s3://bucket-b/path/")

	require.NoError(t, store1.Put(ctx, CurrentName, []byte("catalog-a.kjc")))
	require.NoError(t, store2.Put(ctx, CurrentName, []byte("catalog-b.kjc")))

	assert.Equal(t, "catalog-a.kjc", readCurrent(t, store1))
	assert.Equal(t, "catalog-b.kjc", readCurrent(t, store2))
}
