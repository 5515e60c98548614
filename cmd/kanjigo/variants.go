package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kanjigo/codec"
)

var variantsCmd = &cobra.Command{
	Use:   "variants <kanji|U+XXXX>",
	Short: "List the variant forms of a character",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cp, err := parseCharacter(args[0])
		if err != nil {
			return err
		}
		c, err := outputCodec(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cat, err := openCatalog(ctx, cmd, cfg)
		if err != nil {
			return err
		}
		defer cat.Close()

		vs, err := cat.Variants(cp)
		if err != nil {
			return err
		}
		return writeKanji(cmd.OutOrStdout(), c, vs)
	},
}

// parseCharacter accepts a single character or a U+XXXX codepoint.
func parseCharacter(s string) (rune, error) {
	if r, size := utf8.DecodeRuneInString(s); r != utf8.RuneError && size == len(s) {
		return r, nil
	}
	cp, err := codec.ParseCodepoint(s)
	if err != nil {
		return 0, fmt.Errorf("not a character or codepoint: %q", s)
	}
	return cp, nil
}

func init() {
	addFormatFlag(variantsCmd)
	rootCmd.AddCommand(variantsCmd)
}
