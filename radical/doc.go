// Package radical provides the static radical and component tables.
//
// The tables are embedded YAML datasets loaded once per process. The
// resulting catalogs are read-only and safe for concurrent use without
// synchronization.
//
// Radicals are addressed by ordinal (1..214), by canonical codepoint, or by
// any variant codepoint (positional forms such as 氵 or the Kangxi Radicals
// block forms), all resolving to the same canonical entry.
package radical
