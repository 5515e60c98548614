// Package cache provides a size-bounded LRU used for query results and
// remote blob contents.
//
// Capacity is measured in cost units chosen by the caller: entries for
// query results, bytes for blobs. Values are shared, not copied, so callers
// must treat them as immutable.
package cache
