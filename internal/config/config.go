// Package config loads the kanjigo CLI configuration.
//
// Values are populated from .kanjigo.yaml, KANJIGO_* environment variables
// and command line flags bound to the same viper instance. Nested keys map to
// environment variables with "." replaced by "_", so cache.backend is read
// from KANJIGO_CACHE_BACKEND.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cache backends.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendLocal  = "local"
	BackendS3     = "s3"
	BackendMinIO  = "minio"
)

// ErrInvalid is wrapped by every validation error of Load.
var ErrInvalid = errors.New("config: invalid")

// CacheConfig selects where catalog caches are stored.
type CacheConfig struct {
	Backend     string `mapstructure:"backend"`
	Dir         string `mapstructure:"dir"`
	Name        string `mapstructure:"name"`
	Compression string `mapstructure:"compression"`
	Retain      int    `mapstructure:"retain"`
	// MemoryBytes bounds the in-process blob cache in front of remote
	// backends. Zero disables it.
	MemoryBytes int64 `mapstructure:"memory_bytes"`

	Bucket   string `mapstructure:"bucket"`
	Prefix   string `mapstructure:"prefix"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
	// Table is the DynamoDB table of the S3 commit log. Empty keeps CURRENT
	// in S3.
	Table string `mapstructure:"table"`

	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Secure    bool   `mapstructure:"secure"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config holds all runtime configuration of the CLI.
type Config struct {
	Kanjidic2      string        `mapstructure:"kanjidic2"`
	Kradfiles      []string      `mapstructure:"kradfiles"`
	QueryCacheSize int           `mapstructure:"query_cache_size"`
	ReloadInterval time.Duration `mapstructure:"reload_interval"`
	MetricsAddr    string        `mapstructure:"metrics_addr"`
	Cache          CacheConfig   `mapstructure:"cache"`
	Log            LogConfig     `mapstructure:"log"`
}

// SetDefaults registers the built-in defaults on v. Every key needs a
// default so that environment overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("kanjidic2", "")
	v.SetDefault("kradfiles", []string{})
	v.SetDefault("query_cache_size", 1024)
	v.SetDefault("reload_interval", 5*time.Second)
	v.SetDefault("metrics_addr", "")

	v.SetDefault("cache.backend", BackendLocal)
	v.SetDefault("cache.dir", ".kanjigo-cache")
	v.SetDefault("cache.name", "catalog")
	v.SetDefault("cache.compression", "zstd")
	v.SetDefault("cache.retain", 2)
	v.SetDefault("cache.memory_bytes", 0)
	v.SetDefault("cache.bucket", "")
	v.SetDefault("cache.prefix", "")
	v.SetDefault("cache.region", "")
	v.SetDefault("cache.endpoint", "")
	v.SetDefault("cache.table", "")
	v.SetDefault("cache.access_key", "")
	v.SetDefault("cache.secret_key", "")
	v.SetDefault("cache.secure", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Init wires the KANJIGO_ environment and the config file into v. A missing
// config file is not an error.
func Init(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".kanjigo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("KANJIGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: read: %w", err)
		}
	}
	return nil
}

// Load reads the configuration from v, applying defaults for any value not
// set by config file, environment or flags.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the combinations Load cannot express through defaults.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendNone, BackendMemory:
	case BackendLocal:
		if c.Cache.Dir == "" {
			return fmt.Errorf("%w: cache.dir is required for the local backend", ErrInvalid)
		}
	case BackendS3:
		if c.Cache.Bucket == "" {
			return fmt.Errorf("%w: cache.bucket is required for the s3 backend", ErrInvalid)
		}
	case BackendMinIO:
		if c.Cache.Bucket == "" || c.Cache.Endpoint == "" {
			return fmt.Errorf("%w: cache.bucket and cache.endpoint are required for the minio backend", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalid, c.Cache.Backend)
	}
	if c.Cache.Table != "" && c.Cache.Backend != BackendS3 {
		return fmt.Errorf("%w: cache.table requires the s3 backend", ErrInvalid)
	}
	if len(c.Kradfiles) > 0 && c.Kanjidic2 == "" {
		return fmt.Errorf("%w: kradfiles given without kanjidic2", ErrInvalid)
	}
	if c.QueryCacheSize < 0 {
		return fmt.Errorf("%w: query_cache_size must not be negative", ErrInvalid)
	}
	return nil
}
