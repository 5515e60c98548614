// Package kradfile reads KRADFILE component decompositions.
//
// Each line maps a kanji to the components it is drawn with:
//
//	休 : 化 木
//
// Lines starting with # are comments. The files are published in EUC-JP;
// UTF-8 input is accepted as is.
package kradfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
)

// ErrMalformedLine is returned for a line that is neither a comment nor a
// decomposition.
var ErrMalformedLine = errors.New("kradfile: malformed line")

// Decompositions maps a kanji to its components in file order.
type Decompositions map[rune][]rune

// Merge adds the components of other, keeping existing ones first.
func (d Decompositions) Merge(other Decompositions) {
	for k, cs := range other {
		for _, c := range cs {
			if !slices.Contains(d[k], c) {
				d[k] = append(d[k], c)
			}
		}
	}
}

// Read parses a KRADFILE.
func Read(r io.Reader) (Decompositions, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(data) {
		data, err = japanese.EUCJP.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("kradfile: decode EUC-JP: %w", err)
		}
	}

	out := make(Decompositions)
	sc := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		head, tail, ok := strings.Cut(text, ":")
		head = strings.TrimSpace(head)
		k, size := utf8.DecodeRuneInString(head)
		if !ok || k == utf8.RuneError || size != len(head) {
			return nil, fmt.Errorf("%w %d: %q", ErrMalformedLine, line, text)
		}
		for _, f := range strings.Fields(tail) {
			for _, c := range f {
				if !slices.Contains(out[k], c) {
					out[k] = append(out[k], c)
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("kradfile: %w", err)
	}
	return out, nil
}
