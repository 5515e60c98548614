package s3

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/kanjigo/blobstore"
)

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client     Client
	bucket     string
	prefix     string
	cfg        UploadConfig
	uploader   *manager.Uploader
	downloader *manager.Downloader
}

var _ blobstore.BlobStore = (*Store)(nil)

// Options configures New.
type Options struct {
	Prefix       string
	Region       string
	Endpoint     string
	UsePathStyle bool
	Upload       UploadConfig
}

// Option configures New.
type Option func(*Options)

// WithPrefix sets the key prefix of every blob.
func WithPrefix(prefix string) Option {
	return func(o *Options) { o.Prefix = prefix }
}

// WithRegion overrides the region of the default AWS configuration.
func WithRegion(region string) Option {
	return func(o *Options) { o.Region = region }
}

// WithEndpoint points the client at an S3-compatible endpoint.
func WithEndpoint(endpoint string, usePathStyle bool) Option {
	return func(o *Options) {
		o.Endpoint = endpoint
		o.UsePathStyle = usePathStyle
	}
}

// WithUploadConfig sets the transfer settings.
func WithUploadConfig(cfg UploadConfig) Option {
	return func(o *Options) { o.Upload = cfg }
}

// New creates a Store from the default AWS configuration chain.
func New(ctx context.Context, bucket string, optFns ...Option) (*Store, error) {
	o := Options{Upload: DefaultUploadConfig()}
	for _, fn := range optFns {
		fn(&o)
	}

	var loadOpts []func(*config.LoadOptions) error
	if o.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
		}
		so.UsePathStyle = o.UsePathStyle
	})

	return NewStoreWithConfig(client, bucket, o.Prefix, o.Upload), nil
}

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "catalog/").
func NewStore(client Client, bucket, rootPrefix string) *Store {
	return NewStoreWithConfig(client, bucket, rootPrefix, DefaultUploadConfig())
}

// NewStoreWithConfig creates a new S3 blob store with custom transfer settings.
func NewStoreWithConfig(client Client, bucket, rootPrefix string, cfg UploadConfig) *Store {
	return &Store{
		client:     client,
		bucket:     bucket,
		prefix:     rootPrefix,
		cfg:        cfg,
		uploader:   newUploader(client, cfg),
		downloader: newDownloader(client, cfg),
	}
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open downloads the blob into memory.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	size := aws.ToInt64(head.ContentLength)
	buf := manager.NewWriteAtBuffer(make([]byte, 0, size))
	if size > 0 {
		if _, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		}); err != nil {
			if isNotFound(err) {
				return nil, blobstore.ErrNotFound
			}
			return nil, err
		}
	}

	return blobstore.NewBytesBlob(buf.Bytes()), nil
}

// Put uploads a blob. S3 replaces objects atomically.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   bytes.NewReader(data),
	}
	if s.cfg.EnableChecksum {
		input.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}
	_, err := s.uploader.Upload(ctx, input)
	return err
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

// List returns the names under prefix, relative to the store prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	fullPrefix := s.key(prefix)
	if prefix == "" && s.prefix != "" && !strings.HasSuffix(fullPrefix, "/") {
		// path.Join drops the trailing slash of the root prefix.
		fullPrefix += "/"
	}
	return listObjects(ctx, s.client, s.bucket, fullPrefix, s.prefix)
}
