// Package erasure splits encoded envelopes into Reed-Solomon shards.
//
// With D data shards and P parity shards any P shards may be lost and the
// envelope is still fully recoverable, which lets a ciphertext be stored across
// several places without any single copy being required. Each encoded shard
// carries a small header so a set of shard files can be joined without extra
// metadata.
//
// This implementation uses the klauspost/reedsolomon library.
package erasure
