// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. This package uses the
// official MinIO Go client, which also works against Ceph, SeaweedFS and
// Garage, without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.Dial(ctx, minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	}, "my-bucket", "catalog/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	c := cache.New(store)
package minio
