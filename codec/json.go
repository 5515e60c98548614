package codec

import (
	"encoding/json"
	"io"
)

// JSON renders records with encoding/json.
type JSON struct{}

// Encode writes recs as a JSON array.
func (JSON) Encode(w io.Writer, recs []Record) error {
	return json.NewEncoder(w).Encode(nonNil(recs))
}

// Name returns "json".
func (JSON) Name() string { return "json" }
