// Package serialization persists trained networks.
//
// The parameter encoding is a flat little-endian stream of blocks:
//
//	Matrix:  [int32 width][int32 height][width*height float64, row-major]
//	Vector:  Matrix block with width 1
//	Layer:   Matrix block (weights), Vector block (biases)
//	Network: [int32 layer count][layer blocks, forward order]
//
// Readers fail on short input with an error wrapping ErrTruncated and never
// return a partially populated value.
//
// Model files wrap a Network block in an envelope with a JSON header and a
// SHA-256 checksum of the block:
//
//	[4 bytes: Magic "MLPN"]
//	[4 bytes: Version (uint32 LE)]
//	[4 bytes: Flags (uint32 LE)]
//	[4 bytes: Reserved]
//	[8 bytes: Header size (uint64 LE)]
//	[8 bytes: Payload size (uint64 LE)]
//	[32 bytes: SHA-256 of payload]
//	[Header: JSON]
//	[Payload: Network block]
//
// NewMmapReader maps a model file and parses only its headers, for
// inspecting large models without decoding them.
//
// Example usage:
//
//	if err := serialization.SaveFile("mnist.mlpn", net, serialization.Header{}); err != nil {
//	    log.Fatal(err)
//	}
//
//	net, header, err := serialization.LoadFile("mnist.mlpn", serialization.ReaderOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
