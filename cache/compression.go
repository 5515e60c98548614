package cache

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the codec applied to a version blob.
type Compression uint8

const (
	// CompressionNone stores the persistence stream as is.
	CompressionNone Compression = iota
	// CompressionLZ4 uses the lz4 frame format (fast).
	CompressionLZ4
	// CompressionZSTD uses zstd (better ratio).
	CompressionZSTD
)

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses the names printed by Compression.String.
// The empty string selects CompressionNone.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("cache: unknown compression %q", s)
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compress encodes data with c.
func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionZSTD:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cache: unknown compression %s", c)
	}
}

// sniff detects the compression of a blob from its leading bytes.
func sniff(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZSTD
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// decompress reverses compress, detecting the codec with sniff.
func decompress(data []byte) ([]byte, Compression, error) {
	c := sniff(data)
	switch c {
	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(data, nil)
		return out, c, err
	case CompressionLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		return out, c, err
	default:
		return data, c, nil
	}
}
