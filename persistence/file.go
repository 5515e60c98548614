package persistence

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/hupe1980/kanjigo/internal/fs"
)

// TempMarker is part of the name of every temp file written by SaveToFile.
const TempMarker = ".tmp-"

var tempSeq atomic.Uint64

// SaveToFile writes a file atomically: the content goes to a temp file in the
// same directory which is synced and renamed over filename.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	return SaveToFileFS(fs.Default, filename, writeFunc)
}

// SaveToFileFS is SaveToFile on fsys. The temp file is removed when any step
// fails, so filename keeps its previous content.
func SaveToFileFS(fsys fs.FileSystem, filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	tmpName := filepath.Join(dir, fmt.Sprintf("%s%s%d-%d", filepath.Base(filename), TempMarker, os.Getpid(), tempSeq.Add(1)))

	tmp, err := fsys.OpenFile(tmpName, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = fsys.Remove(tmpName)
		}
	}()

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := fsys.Rename(tmpName, filename); err != nil {
		return err
	}
	committed = true

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := fsys.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// LoadFromFile opens filename and hands a buffered reader to readFunc.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := fs.Default.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return readFunc(bufio.NewReaderSize(f, 256*1024))
}
