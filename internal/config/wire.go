package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/hupe1980/kanjigo"
	"github.com/hupe1980/kanjigo/blobstore"
	"github.com/hupe1980/kanjigo/blobstore/minio"
	"github.com/hupe1980/kanjigo/blobstore/s3"
	"github.com/hupe1980/kanjigo/cache"
	"github.com/hupe1980/kanjigo/ingest"
)

// Source returns the dictionary files. It reports false when no kanjidic2
// file is configured.
func (c Config) Source() (ingest.Source, bool) {
	if c.Kanjidic2 == "" {
		return ingest.Source{}, false
	}
	return ingest.Source{Kanjidic2: c.Kanjidic2, Kradfiles: c.Kradfiles}, true
}

// Logger builds the logger described by Log, writing to w.
func (c Config) Logger(w io.Writer) (*kanjigo.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	switch c.Log.Format {
	case "json":
		return kanjigo.NewLogger(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return kanjigo.NewLogger(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
}

// BlobStore opens the configured cache backend. It returns nil for the none
// backend.
func (c Config) BlobStore(ctx context.Context) (blobstore.BlobStore, error) {
	cc := c.Cache
	var blobs blobstore.BlobStore
	switch cc.Backend {
	case BackendNone:
		return nil, nil
	case BackendMemory:
		return blobstore.NewMemoryStore(), nil
	case BackendLocal:
		return blobstore.NewLocalStore(cc.Dir), nil
	case BackendS3:
		opts := []s3.Option{s3.WithPrefix(cc.Prefix), s3.WithRegion(cc.Region)}
		if cc.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cc.Endpoint, true))
		}
		store, err := s3.New(ctx, cc.Bucket, opts...)
		if err != nil {
			return nil, fmt.Errorf("config: s3: %w", err)
		}
		blobs = store
		if cc.Table != "" {
			ddb, err := c.dynamoDB(ctx)
			if err != nil {
				return nil, err
			}
			baseURI := "s3://" + cc.Bucket + "/" + cc.Prefix
			blobs = s3.NewDDBCommitStore(store, ddb, cc.Table, baseURI)
		}
	case BackendMinIO:
		store, err := minio.Dial(ctx, minio.Config{
			Endpoint:  cc.Endpoint,
			AccessKey: cc.AccessKey,
			SecretKey: cc.SecretKey,
			Secure:    cc.Secure,
			Region:    cc.Region,
		}, cc.Bucket, cc.Prefix)
		if err != nil {
			return nil, fmt.Errorf("config: minio: %w", err)
		}
		blobs = store
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", ErrInvalid, cc.Backend)
	}

	if cc.MemoryBytes > 0 {
		blobs = blobstore.NewCachingStore(blobs, cc.MemoryBytes, blobstore.WithUncached(cache.CurrentName))
	}
	return blobs, nil
}

func (c Config) dynamoDB(ctx context.Context) (*dynamodb.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if c.Cache.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(c.Cache.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("config: dynamodb: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

// CatalogCache opens the cache over the configured backend. It returns nil
// for the none backend.
func (c Config) CatalogCache(ctx context.Context) (*cache.Cache, error) {
	blobs, err := c.BlobStore(ctx)
	if err != nil || blobs == nil {
		return nil, err
	}
	comp, err := cache.ParseCompression(c.Cache.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: cache.compression: %w", ErrInvalid, err)
	}
	return cache.New(blobs,
		cache.WithName(c.Cache.Name),
		cache.WithCompression(comp),
		cache.WithRetain(c.Cache.Retain),
	), nil
}

// CatalogOptions translates the configuration into catalog options.
func (c Config) CatalogOptions(ctx context.Context, w io.Writer) ([]kanjigo.Option, error) {
	logger, err := c.Logger(w)
	if err != nil {
		return nil, err
	}
	opts := []kanjigo.Option{
		kanjigo.WithLogger(logger),
		kanjigo.WithQueryCacheSize(c.QueryCacheSize),
		kanjigo.WithReloadInterval(c.ReloadInterval),
	}
	if src, ok := c.Source(); ok {
		opts = append(opts, kanjigo.WithSource(src))
	}
	cc, err := c.CatalogCache(ctx)
	if err != nil {
		return nil, err
	}
	if cc != nil {
		opts = append(opts, kanjigo.WithCache(cc))
	}
	return opts, nil
}
