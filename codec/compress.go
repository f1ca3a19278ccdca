package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the algorithm of a compressed envelope.
type Compression uint8

const (
	// CompressionNone stores the payload as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
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

// ParseCompression parses "none", "lz4" or "zstd".
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("codec: unknown compression %q", s)
	}
}

var (
	// ErrCorruptEnvelope is returned when a compressed envelope cannot be
	// decoded.
	ErrCorruptEnvelope = errors.New("codec: corrupt envelope")
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Envelope layout:
//
//	[algorithm u8][uncompressed size u32][compressed size u32][data...]
//
// A compressed size of 0 means the payload is stored raw.
const headerSize = 9

// Compress wraps data in an envelope compressed with c. Payloads that do not
// shrink below 90% of their size are stored raw.
func Compress(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch c {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZSTD:
		compressed = compressZSTD(data)
	default:
		return nil, fmt.Errorf("codec: unknown compression %d", uint8(c))
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		return envelope(c, len(data), 0, data), nil
	}
	return envelope(c, len(data), len(compressed), compressed), nil
}

func envelope(c Compression, uncompressed, compressed int, payload []byte) []byte {
	out := make([]byte, headerSize+len(payload))
	out[0] = byte(c)
	binary.LittleEndian.PutUint32(out[1:], uint32(uncompressed))
	binary.LittleEndian.PutUint32(out[5:], uint32(compressed))
	copy(out[headerSize:], payload)
	return out
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

func compressZSTD(data []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(data, nil)
}

// Decompress unwraps an envelope produced by Compress.
func Decompress(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptEnvelope, len(data))
	}

	c := Compression(data[0])
	uncompressedSize := binary.LittleEndian.Uint32(data[1:])
	compressedSize := binary.LittleEndian.Uint32(data[5:])
	body := data[headerSize:]

	if compressedSize == 0 {
		if uint64(len(body)) < uint64(uncompressedSize) {
			return nil, fmt.Errorf("%w: truncated payload", ErrCorruptEnvelope)
		}
		return body[:uncompressedSize], nil
	}
	if uint64(len(body)) < uint64(compressedSize) {
		return nil, fmt.Errorf("%w: truncated payload", ErrCorruptEnvelope)
	}
	body = body[:compressedSize]

	switch c {
	case CompressionLZ4:
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(body, result)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptEnvelope, err)
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptEnvelope)
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(body, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptEnvelope, err)
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptEnvelope)
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrCorruptEnvelope, uint8(c))
	}
}
