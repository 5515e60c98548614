// Package cache persists parsed catalogs in a blobstore.BlobStore so later
// runs can skip the dictionary parse.
//
// Each Save writes a new immutable version blob, optionally compressed with
// lz4 or zstd, and then points the CURRENT blob at it. Load follows CURRENT
// and detects the compression from the blob's leading magic bytes, so a
// reader never needs to know how the writer was configured.
//
// Any reason a cached catalog cannot be used (absent, foreign, outdated,
// truncated or corrupt) is a miss; see IsMiss.
package cache
