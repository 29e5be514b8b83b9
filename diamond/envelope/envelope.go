// Package envelope stores a diamond ciphertext together with the parameters
// needed to decrypt it.
//
// A bare ciphertext does not say how many rounds produced it, so it cannot be
// decrypted on its own. An envelope records the round count and the grid size
// of each round, and optionally LZ4-compresses the ciphertext.
package envelope

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var (
	ErrBadMagic           = errors.New("envelope: invalid magic")
	ErrUnsupportedVersion = errors.New("envelope: unsupported version")
	ErrTruncated          = errors.New("envelope: truncated")
	ErrTooLarge           = errors.New("envelope: exceeds maximum size")
	ErrDecompress         = errors.New("envelope: decompression failed")
	ErrInvalid            = errors.New("envelope: invalid field")
)

const (
	// Magic identifies an envelope ("DMND").
	Magic = uint32(0x444d4e44)
	// Version is the current format version.
	Version = 1
	// MaxEnvelopeSize caps the encoded envelope and the decompressed payload (16 MB).
	MaxEnvelopeSize = 16 * 1024 * 1024
	// MaxGridSizes is the most per-round grid sizes an envelope can record.
	MaxGridSizes = math.MaxUint8

	flagLZ4 = 1 << 0

	// magic(4) + version(1) + flags(1) + rounds(2) + sizes count(1) + payload length(4)
	fixedHeaderSize = 4 + 1 + 1 + 2 + 1 + 4

	// MaxCiphertext is the longest ciphertext any envelope can hold uncompressed.
	MaxCiphertext = MaxEnvelopeSize - fixedHeaderSize - 2*MaxGridSizes
)

// Envelope is a ciphertext plus its decryption parameters.
type Envelope struct {
	Rounds     int
	GridSizes  []int // grid size of each encryption round, may be empty
	Ciphertext string
}

func (e Envelope) validate() error {
	if e.Rounds < 0 || e.Rounds > math.MaxUint16 {
		return fmt.Errorf("%w: rounds %d", ErrInvalid, e.Rounds)
	}
	if len(e.GridSizes) > MaxGridSizes {
		return fmt.Errorf("%w: %d grid sizes", ErrInvalid, len(e.GridSizes))
	}
	for _, s := range e.GridSizes {
		if s < 0 || s > math.MaxUint16 {
			return fmt.Errorf("%w: grid size %d", ErrInvalid, s)
		}
	}
	return nil
}

// Check reports whether the recorded grid sizes agree with the round count
// and the ciphertext length. Envelopes without grid sizes always pass.
func (e Envelope) Check() error {
	if len(e.GridSizes) == 0 {
		return nil
	}
	if len(e.GridSizes) != e.Rounds {
		return fmt.Errorf("%w: %d grid sizes for %d rounds", ErrInvalid, len(e.GridSizes), e.Rounds)
	}
	last := e.GridSizes[len(e.GridSizes)-1]
	if last*last != len(e.Ciphertext) {
		return fmt.Errorf("%w: ciphertext length %d does not fill a %d×%d grid", ErrInvalid, len(e.Ciphertext), last, last)
	}
	return nil
}

// Encode serializes an envelope.
// Format:
//
//	4 bytes: magic
//	1 byte: version
//	1 byte: flags (bit 0: payload is an LZ4 block, see compress.go)
//	2 bytes: rounds
//	1 byte: grid size count N
//	N×2 bytes: grid sizes
//	4 bytes: payload length
//	N bytes: payload
//
// The payload is compressed only when that makes it smaller.
func Encode(env Envelope, level Compression) ([]byte, error) {
	if err := env.validate(); err != nil {
		return nil, err
	}

	payload, compressed := maybeCompress([]byte(env.Ciphertext), level)
	size := fixedHeaderSize + 2*len(env.GridSizes) + len(payload)
	if size > MaxEnvelopeSize {
		return nil, ErrTooLarge
	}

	buf := make([]byte, size)
	offset := 0

	binary.BigEndian.PutUint32(buf[offset:], Magic)
	offset += 4
	buf[offset] = Version
	offset++
	if compressed {
		buf[offset] = flagLZ4
	}
	offset++
	binary.BigEndian.PutUint16(buf[offset:], uint16(env.Rounds))
	offset += 2

	buf[offset] = byte(len(env.GridSizes))
	offset++
	for _, s := range env.GridSizes {
		binary.BigEndian.PutUint16(buf[offset:], uint16(s))
		offset += 2
	}

	binary.BigEndian.PutUint32(buf[offset:], uint32(len(payload)))
	offset += 4
	copy(buf[offset:], payload)

	return buf, nil
}

// Decode parses an envelope produced by Encode.
func Decode(data []byte) (Envelope, error) {
	if len(data) > MaxEnvelopeSize {
		return Envelope{}, ErrTooLarge
	}
	if len(data) < 4 {
		return Envelope{}, ErrTruncated
	}
	if binary.BigEndian.Uint32(data[:4]) != Magic {
		return Envelope{}, ErrBadMagic
	}
	if len(data) < fixedHeaderSize {
		return Envelope{}, ErrTruncated
	}
	offset := 4

	if v := data[offset]; v != Version {
		return Envelope{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	offset++
	flags := data[offset]
	offset++
	rounds := int(binary.BigEndian.Uint16(data[offset:]))
	offset += 2

	count := int(data[offset])
	offset++
	if offset+2*count+4 > len(data) {
		return Envelope{}, ErrTruncated
	}
	var sizes []int
	if count > 0 {
		sizes = make([]int, count)
		for i := range sizes {
			sizes[i] = int(binary.BigEndian.Uint16(data[offset:]))
			offset += 2
		}
	}

	payloadLen := int(binary.BigEndian.Uint32(data[offset:]))
	offset += 4
	if offset+payloadLen > len(data) {
		return Envelope{}, ErrTruncated
	}
	payload := data[offset : offset+payloadLen]

	if flags&flagLZ4 != 0 {
		var err error
		payload, err = decompress(payload)
		if err != nil {
			return Envelope{}, err
		}
	}

	return Envelope{
		Rounds:     rounds,
		GridSizes:  sizes,
		Ciphertext: string(payload),
	}, nil
}

// Write writes a length-prefixed envelope to w.
func Write(w io.Writer, env Envelope, level Compression) error {
	data, err := Encode(env, level)
	if err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Read reads a length-prefixed envelope from r.
func Read(r io.Reader) (Envelope, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return Envelope{}, err
	}
	dataLen := binary.BigEndian.Uint32(lenBuf[:])
	if dataLen > MaxEnvelopeSize {
		return Envelope{}, ErrTooLarge
	}
	data := make([]byte, dataLen)
	if _, err := io.ReadFull(r, data); err != nil {
		return Envelope{}, err
	}
	return Decode(data)
}
