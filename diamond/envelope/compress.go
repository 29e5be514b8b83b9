package envelope

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// Compression controls whether and how hard the payload is compressed.
type Compression int

const (
	CompressionNone    Compression = iota // store the ciphertext as is
	CompressionFast                       // fastest, lower ratio
	CompressionDefault                    // balanced
	CompressionBest                       // best ratio, slower
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionFast:
		return "fast"
	case CompressionDefault:
		return "default"
	case CompressionBest:
		return "best"
	default:
		return "unknown"
	}
}

// ParseCompression parses the names returned by Compression.String.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "none", "":
		return CompressionNone, nil
	case "fast":
		return CompressionFast, nil
	case "default":
		return CompressionDefault, nil
	case "best":
		return CompressionBest, nil
	}
	return CompressionNone, fmt.Errorf("envelope: unknown compression %q", s)
}

// Compressed payloads are a single LZ4 block prefixed with the 4-byte
// big-endian length of the uncompressed ciphertext.
const blockPrefix = 4

var errIncompressible = errors.New("envelope: payload is incompressible")

var fastCompressors = sync.Pool{
	New: func() any { return new(lz4.Compressor) },
}

func (c Compression) hcLevel() lz4.CompressionLevel {
	if c == CompressionBest {
		return lz4.Level9
	}
	return lz4.Level4
}

func compress(data []byte, level Compression) ([]byte, error) {
	out := make([]byte, blockPrefix+lz4.CompressBlockBound(len(data)))
	binary.BigEndian.PutUint32(out, uint32(len(data)))

	var (
		n   int
		err error
	)
	if level == CompressionFast {
		c := fastCompressors.Get().(*lz4.Compressor)
		n, err = c.CompressBlock(data, out[blockPrefix:])
		fastCompressors.Put(c)
	} else {
		hc := lz4.CompressorHC{Level: level.hcLevel()}
		n, err = hc.CompressBlock(data, out[blockPrefix:])
	}
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errIncompressible
	}
	return out[:blockPrefix+n], nil
}

func decompress(data []byte) ([]byte, error) {
	if len(data) < blockPrefix {
		return nil, ErrDecompress
	}
	size := binary.BigEndian.Uint32(data)
	if size > MaxEnvelopeSize {
		return nil, ErrTooLarge
	}
	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[blockPrefix:], out)
	if err != nil || n != int(size) {
		return nil, ErrDecompress
	}
	return out, nil
}

// maybeCompress compresses payload when it pays off and reports whether it did.
func maybeCompress(payload []byte, level Compression) ([]byte, bool) {
	if level == CompressionNone || len(payload) == 0 {
		return payload, false
	}
	compressed, err := compress(payload, level)
	if err != nil || len(compressed) >= len(payload) {
		return payload, false
	}
	return compressed, true
}
