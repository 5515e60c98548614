package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Decode every cached catalog version and check its checksum",
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
			return errors.New("verify needs a cache backend")
		}

		versions, err := cc.Versions(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		bad := 0
		for _, name := range versions {
			s, err := cc.LoadVersion(ctx, name)
			if err != nil {
				fmt.Fprintf(out, "✗ %s: %v\n", name, err)
				bad++
				continue
			}
			fmt.Fprintf(out, "✓ %s: %d records\n", name, s.Len())
		}
		if bad > 0 {
			return fmt.Errorf("%d of %d versions failed verification", bad, len(versions))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
