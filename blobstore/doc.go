// Package blobstore provides storage for catalog cache blobs.
//
// A catalog cache is a small set of immutable, versioned blobs plus a
// CURRENT pointer naming the latest one. BlobStore is the abstraction the
// cache writes to. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, atomic writes, mmap reads
//   - MemoryStore: in-memory, for tests
//   - CachingStore: keeps recently read blobs of another store in memory
//   - s3.Store, s3.DDBCommitStore: Amazon S3, optionally with DynamoDB commits
//   - minio.Store: MinIO and other S3-compatible storage
package blobstore
