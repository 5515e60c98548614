// Package s3 provides Amazon S3 implementations of blobstore.BlobStore.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("kanjigo/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//
//	c := cache.New(store)
//	cat, err := kanjigo.Open(ctx, kanjigo.WithCache(c), kanjigo.WithSource(src))
//
// Catalog blobs are small and always read whole, so Open downloads the
// object through the transfer manager and serves reads from memory.
//
// DDBCommitStore layers a DynamoDB commit log over a Store so that
// concurrent writers of the CURRENT pointer cannot overwrite each other.
package s3
