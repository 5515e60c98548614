package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kanjigo/cache"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the cached catalog versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cc, err := cfg.CatalogCache(ctx)
		if err != nil {
			return err
		}
		if cc == nil {
			return errors.New("info needs a cache backend")
		}

		out := cmd.OutOrStdout()
		current, err := cc.Current(ctx)
		switch {
		case cache.IsMiss(err):
			fmt.Fprintln(out, "current: none")
		case err != nil:
			return err
		default:
			fmt.Fprintf(out, "current: %s\n", current)
		}

		versions, err := cc.Versions(ctx)
		if err != nil {
			return err
		}
		for _, name := range versions {
			info, err := cc.Stat(ctx, name)
			if err != nil {
				fmt.Fprintf(out, "  %s\tunreadable: %v\n", name, err)
				continue
			}
			fmt.Fprintf(out, "  %s\t%d bytes\t%s\tformat v%d\n", info.Name, info.Size, info.Compression, info.Header.Version)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
