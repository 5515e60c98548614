package persistence

import (
	"encoding/binary"
	"fmt"
	"io"
	"slices"
)

// binaryWriter writes little-endian primitives. The first error sticks and
// turns every later call into a no-op.
type binaryWriter struct {
	w   io.Writer
	buf [4]byte
	err error
}

func (bw *binaryWriter) write(p []byte) {
	if bw.err != nil {
		return
	}
	_, bw.err = bw.w.Write(p)
}

func (bw *binaryWriter) u8(v uint8) {
	bw.buf[0] = v
	bw.write(bw.buf[:1])
}

func (bw *binaryWriter) u16(v uint16) {
	binary.LittleEndian.PutUint16(bw.buf[:2], v)
	bw.write(bw.buf[:2])
}

func (bw *binaryWriter) u32(v uint32) {
	binary.LittleEndian.PutUint32(bw.buf[:4], v)
	bw.write(bw.buf[:4])
}

func (bw *binaryWriter) str(s string) {
	bw.u32(uint32(len(s)))
	if bw.err != nil {
		return
	}
	_, bw.err = io.WriteString(bw.w, s)
}

// strings writes a string set in sorted order.
func (bw *binaryWriter) strings(set []string) {
	sorted := slices.Clone(set)
	slices.Sort(sorted)
	bw.u32(uint32(len(sorted)))
	for _, s := range sorted {
		bw.str(s)
	}
}

// runes writes a codepoint set in ascending order.
func (bw *binaryWriter) runes(set []rune) {
	sorted := slices.Clone(set)
	slices.Sort(sorted)
	bw.u32(uint32(len(sorted)))
	for _, r := range sorted {
		bw.u32(uint32(r))
	}
}

// binaryReader is the mirror of binaryWriter.
type binaryReader struct {
	r   io.Reader
	buf [4]byte
	err error
}

func (br *binaryReader) read(n int) []byte {
	if br.err != nil {
		return nil
	}
	if _, err := io.ReadFull(br.r, br.buf[:n]); err != nil {
		br.err = truncated(err)
		return nil
	}
	return br.buf[:n]
}

func (br *binaryReader) u8() uint8 {
	if b := br.read(1); b != nil {
		return b[0]
	}
	return 0
}

func (br *binaryReader) u16() uint16 {
	if b := br.read(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (br *binaryReader) u32() uint32 {
	if b := br.read(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

// count reads a u32 length and rejects implausible values.
func (br *binaryReader) count() int {
	n := br.u32()
	if br.err == nil && n > maxLength {
		br.err = fmt.Errorf("%w: length %d exceeds limit", ErrCorrupt, n)
		return 0
	}
	return int(n)
}

func (br *binaryReader) str() string {
	n := br.count()
	if br.err != nil || n == 0 {
		return ""
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(br.r, b); err != nil {
		br.err = truncated(err)
		return ""
	}
	return string(b)
}

func (br *binaryReader) strings() []string {
	n := br.count()
	if br.err != nil || n == 0 {
		return nil
	}
	out := make([]string, 0, min(n, 64))
	for range n {
		s := br.str()
		if br.err != nil {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (br *binaryReader) runes() []rune {
	n := br.count()
	if br.err != nil || n == 0 {
		return nil
	}
	out := make([]rune, 0, min(n, 64))
	for range n {
		r := rune(br.u32())
		if br.err != nil {
			return nil
		}
		out = append(out, r)
	}
	return out
}
