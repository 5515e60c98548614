package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/kanjigo/codec"
	"github.com/hupe1980/kanjigo/model"
)

var queryCmd = &cobra.Command{
	Use:   "query <input>...",
	Short: "Query the catalog",
	Long: `Query the catalog with literal characters or keyed groups.

Examples:
  kanjigo query 日本語
  kanjigo query "grade=1&jlpt=4"
  kanjigo query "component=口,strokes<5"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
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

		res, err := cat.Query(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		return writeKanji(cmd.OutOrStdout(), c, res.Records)
	},
}

// outputCodec resolves the --format flag. It returns a nil codec for text.
func outputCodec(cmd *cobra.Command) (codec.Codec, error) {
	format, _ := cmd.Flags().GetString("format")
	if format == "text" {
		return nil, nil
	}
	c, ok := codec.ByName(format)
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want text, %s)", format, strings.Join(codec.Names(), ", "))
	}
	return c, nil
}

func writeKanji(w io.Writer, c codec.Codec, ks []*model.Kanji) error {
	if c != nil {
		return codec.EncodeKanji(w, c, ks)
	}
	for _, k := range ks {
		writeText(w, k)
	}
	return nil
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "text", "output format: text, "+strings.Join(codec.Names(), " or "))
}

func writeText(w io.Writer, k *model.Kanji) {
	var readings []string
	var meanings []string
	for _, g := range k.Groups {
		readings = append(readings, g.On...)
		readings = append(readings, g.Kun...)
		meanings = append(meanings, g.English...)
	}
	fmt.Fprintf(w, "%s\t%s\tstrokes=%d\tgrade=%d\tjlpt=%d\t%s\t%s\n",
		k.Literal,
		codec.FormatCodepoint(k.Codepoint),
		k.StrokeCount,
		k.Grade,
		k.JLPT,
		strings.Join(readings, " "),
		strings.Join(meanings, "; "),
	)
}

func init() {
	addFormatFlag(queryCmd)
	rootCmd.AddCommand(queryCmd)
}
