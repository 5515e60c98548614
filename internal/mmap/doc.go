// Package mmap provides read-only memory-mapped file access.
//
//	m, err := mmap.Open("catalog-000001.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	data := m.Bytes()
//
// Unix systems use mmap(2) with madvise(2) hints. Other platforms read the
// file into memory.
//
// A File is safe for concurrent reads. Callers must not touch Bytes after
// Close returns.
package mmap
