// Package endian provides a byte-order engine for the ssbh file family. The
// layout package's primitive codec does its own little-endian byte shifting
// and does not import this package.
//
// Every SSBH file and its non-SSBH siblings (MeshEx, Adj) are unconditionally
// little-endian. This package still exposes an EndianEngine interface rather
// than a bare binary.ByteOrder constant, so the rest of the code base depends
// on an abstraction instead of a concrete byte order — useful if a future
// schema ever needs a different engine, and consistent with how the format
// package enumerates the rest of the on-disk vocabulary.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into one interface for convenient byte-order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// LittleEndian is the sole byte-order engine used by the ssbh file family.
var LittleEndian EndianEngine = binary.LittleEndian

// Engine returns the byte-order engine for the file family. It always
// returns LittleEndian; call sites read the same way they would for a
// format that had to choose a byte order at runtime.
func Engine() EndianEngine {
	return LittleEndian
}
