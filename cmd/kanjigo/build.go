package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kanjigo"
	"github.com/hupe1980/kanjigo/ingest"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the catalog from the dictionary files and write the cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		src, ok := cfg.Source()
		if !ok {
			return fmt.Errorf("%w: set --kanjidic2", kanjigo.ErrNoSource)
		}
		cc, err := cfg.CatalogCache(ctx)
		if err != nil {
			return err
		}
		if cc == nil {
			return errors.New("build needs a cache backend")
		}
		logger, err := cfg.Logger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		s, stats, err := ingest.Load(ctx, src)
		logger.LogBuild(ctx, src.Kanjidic2, stats.Characters, stats.Duplicates, stats.Duration, err)
		if err != nil {
			return fmt.Errorf("build from %s: %w", src.Kanjidic2, err)
		}
		name, err := cc.Save(ctx, s)
		logger.LogSave(ctx, name, err)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "database version: %s\n", stats.Version)
		fmt.Fprintf(out, "characters:       %d\n", stats.Characters)
		fmt.Fprintf(out, "decomposed:       %d\n", stats.Decomposed)
		fmt.Fprintf(out, "duplicates:       %d\n", stats.Duplicates)
		fmt.Fprintf(out, "wrote:            %s (%s)\n", name, cc.Compression())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
