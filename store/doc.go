// Package store implements the catalog store: the single owner of every
// kanji record plus the secondary indices used to look records up by
// independent keys.
//
// Records live in one arena keyed by codepoint. Secondary indices never hold
// records; they hold codepoints (legacy code indices) or roaring bitmaps of
// codepoints (numeric indices) that resolve through the arena. An index
// therefore cannot outlive or duplicate a record, and Clear releases each
// record exactly once.
//
// A Store is built by a single writer (ingestion or decoding) and treated as
// immutable afterwards. Concurrent reads of a fully built store are safe;
// mutation concurrent with reads is not.
package store
