// Package model defines the record types held by a kanjigo catalog.
//
// # Records
//
//   - Kanji: one character with its codes, classification and readings
//   - ReadingMeaningGroup: on/kun readings with English and French meanings
//
// Radicals and structural components reuse the Kanji shape as pseudo-records:
// a radical carries its ordinal in ClassicalRadical, a component is keyed by
// its own codepoint.
//
// Zero values mean "absent" for every optional field, so a record built from
// sparse source data is always valid to index and serialize.
package model
