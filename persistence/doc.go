// Package persistence serializes a catalog store to a versioned binary blob
// and restores it.
//
// The primary index is written once with full record payloads, each record
// followed by an identity tag local to the stream. Every other index refers
// to records by tag only, so records shared between indices are written once
// and shared again after decoding.
//
// All integers are little-endian. Strings are a u32 byte length followed by
// UTF-8 bytes. The stream ends with a CRC32 (IEEE) of every preceding byte.
package persistence
