package codec

import (
	"io"

	gojson "github.com/goccy/go-json"
)

// GoJSON renders records with github.com/goccy/go-json.
type GoJSON struct{}

// Encode writes recs as a JSON array.
func (GoJSON) Encode(w io.Writer, recs []Record) error {
	return gojson.NewEncoder(w).Encode(nonNil(recs))
}

// Name returns "go-json".
func (GoJSON) Name() string { return "go-json" }
