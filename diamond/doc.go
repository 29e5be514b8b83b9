// Package diamond provides the diamond-ring transposition cipher and the
// plumbing around it.
//
// The cipher itself lives in diamond/cipher, built on diamond/grid and
// diamond/ring. Around it are a self-describing ciphertext container
// (diamond/envelope), Reed-Solomon sharding of containers
// (diamond/envelope/erasure) and a QUIC request/response service
// (diamond/service). This package ties the cipher and the envelope together.
package diamond
