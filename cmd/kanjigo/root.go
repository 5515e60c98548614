package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/kanjigo"
	"github.com/hupe1980/kanjigo/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "kanjigo",
	Short:         "Kanji catalog builder and query tool",
	Long:          "kanjigo builds a kanji catalog from kanjidic2 and kradfile, caches it in a blob store and answers queries against it.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		return config.Init(viper.GetViper(), cfgFile)
	},
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default .kanjigo.yaml)")
	flags.String("kanjidic2", "", "path of the kanjidic2 XML file (.gz accepted)")
	flags.StringSlice("kradfile", nil, "path of a kradfile (repeatable)")
	flags.String("cache-backend", "", "cache backend: local, memory, s3, minio or none")
	flags.String("cache-dir", "", "directory of the local cache backend")
	flags.String("cache-bucket", "", "bucket of the s3 and minio cache backends")
	flags.String("compression", "", "cache compression: none, lz4 or zstd")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")

	for key, flag := range map[string]string{
		"kanjidic2":         "kanjidic2",
		"kradfiles":         "kradfile",
		"cache.backend":     "cache-backend",
		"cache.dir":         "cache-dir",
		"cache.bucket":      "cache-bucket",
		"cache.compression": "compression",
		"log.level":         "log-level",
		"log.format":        "log-format",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openCatalog opens a catalog from the cache, falling back to the source.
func openCatalog(ctx context.Context, cmd *cobra.Command, cfg config.Config, extra ...kanjigo.Option) (*kanjigo.Catalog, error) {
	opts, err := cfg.CatalogOptions(ctx, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	return kanjigo.Open(ctx, append(opts, extra...)...)
}
