package erasure

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/reedsolomon"
)

var (
	ErrTooManyLost   = errors.New("erasure: too many shards lost, cannot recover")
	ErrInvalidConfig = errors.New("erasure: invalid data/parity configuration")
	ErrShardMismatch = errors.New("erasure: shards do not belong together")
	ErrInvalidShard  = errors.New("erasure: invalid shard encoding")
)

const (
	// MaxShards bounds data+parity so a shard index fits the one-byte header field.
	MaxShards = 255

	// "DS" + index(1) + data(1) + parity(1) + payload size(4)
	headerSize = 2 + 1 + 1 + 1 + 4
)

var shardMagic = [2]byte{'D', 'S'}

// Shard is one piece of an erasure-coded payload.
type Shard struct {
	Index        int
	DataShards   int
	ParityShards int
	Size         int // length of the original payload
	Data         []byte
}

// Encode serializes the shard with its header.
func (s Shard) Encode() []byte {
	out := make([]byte, headerSize+len(s.Data))
	copy(out[:2], shardMagic[:])
	out[2] = byte(s.Index)
	out[3] = byte(s.DataShards)
	out[4] = byte(s.ParityShards)
	binary.BigEndian.PutUint32(out[5:9], uint32(s.Size))
	copy(out[headerSize:], s.Data)
	return out
}

// DecodeShard parses a shard produced by Shard.Encode.
func DecodeShard(data []byte) (Shard, error) {
	if len(data) < headerSize || data[0] != shardMagic[0] || data[1] != shardMagic[1] {
		return Shard{}, ErrInvalidShard
	}
	s := Shard{
		Index:        int(data[2]),
		DataShards:   int(data[3]),
		ParityShards: int(data[4]),
		Size:         int(binary.BigEndian.Uint32(data[5:9])),
		Data:         append([]byte(nil), data[headerSize:]...),
	}
	if s.DataShards <= 0 || s.ParityShards <= 0 || s.Index >= s.DataShards+s.ParityShards {
		return Shard{}, ErrInvalidShard
	}
	return s, nil
}

// Codec provides Reed-Solomon encoding/decoding.
type Codec struct {
	enc          reedsolomon.Encoder
	dataShards   int
	parityShards int
}

// NewCodec creates a new erasure codec.
// dataShards: number of data shards
// parityShards: number of parity shards (can lose up to this many)
func NewCodec(dataShards, parityShards int) (*Codec, error) {
	if dataShards <= 0 || parityShards <= 0 || dataShards+parityShards > MaxShards {
		return nil, ErrInvalidConfig
	}
	enc, err := reedsolomon.New(dataShards, parityShards)
	if err != nil {
		return nil, err
	}
	return &Codec{
		enc:          enc,
		dataShards:   dataShards,
		parityShards: parityShards,
	}, nil
}

// DataShards returns the number of data shards.
func (c *Codec) DataShards() int { return c.dataShards }

// ParityShards returns the number of parity shards.
func (c *Codec) ParityShards() int { return c.parityShards }

// TotalShards returns the total number of shards (data + parity).
func (c *Codec) TotalShards() int { return c.dataShards + c.parityShards }

// Overhead returns the storage overhead ratio (e.g., 1.5 for 4+2).
func (c *Codec) Overhead() float64 {
	return float64(c.TotalShards()) / float64(c.dataShards)
}

// Split splits payload into data shards and computes parity.
func (c *Codec) Split(payload []byte) ([]Shard, error) {
	if len(payload) == 0 {
		return nil, reedsolomon.ErrShortData
	}
	raw, err := c.enc.Split(payload)
	if err != nil {
		return nil, err
	}
	if err := c.enc.Encode(raw); err != nil {
		return nil, err
	}
	shards := make([]Shard, len(raw))
	for i, data := range raw {
		shards[i] = Shard{
			Index:        i,
			DataShards:   c.dataShards,
			ParityShards: c.parityShards,
			Size:         len(payload),
			Data:         data,
		}
	}
	return shards, nil
}

// Join reconstructs the original payload from any subset of at least
// DataShards() shards. Order does not matter.
func (c *Codec) Join(shards []Shard) ([]byte, error) {
	if len(shards) == 0 {
		return nil, ErrTooManyLost
	}
	size := shards[0].Size
	raw := make([][]byte, c.TotalShards())
	for _, s := range shards {
		if s.DataShards != c.dataShards || s.ParityShards != c.parityShards || s.Size != size {
			return nil, fmt.Errorf("%w: shard %d", ErrShardMismatch, s.Index)
		}
		if s.Index < 0 || s.Index >= len(raw) {
			return nil, fmt.Errorf("%w: index %d", ErrShardMismatch, s.Index)
		}
		raw[s.Index] = s.Data
	}

	if err := c.enc.ReconstructData(raw); err != nil {
		if errors.Is(err, reedsolomon.ErrTooFewShards) {
			return nil, ErrTooManyLost
		}
		return nil, err
	}

	out := make([]byte, 0, size)
	for i := 0; i < c.dataShards && len(out) < size; i++ {
		remaining := size - len(out)
		if remaining >= len(raw[i]) {
			out = append(out, raw[i]...)
		} else {
			out = append(out, raw[i][:remaining]...)
		}
	}
	return out, nil
}

// CodecFor returns a codec matching the layout recorded in shard.
func CodecFor(shard Shard) (*Codec, error) {
	return NewCodec(shard.DataShards, shard.ParityShards)
}
