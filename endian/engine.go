// Package endian provides byte order utilities for reading Director movie files.
//
// Director movies exist in two byte orders. Files authored on the Macintosh
// start with the bytes "RIFX" and store every integer and chunk tag big-endian.
// Files authored on Windows start with "XFIR", the same tag byte-swapped, and
// store everything little-endian. This package combines Go's ByteOrder and
// AppendByteOrder interfaces into a single EndianEngine and maps a movie
// signature to the engine that decodes the rest of the file.
//
// # Basic Usage
//
//	engine, ok := endian.FromSignature(data[0:4])
//	if !ok {
//	    return errs.ErrFormat
//	}
//	size := engine.Uint32(data[4:8])
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

var (
	signatureBig    = [4]byte{'R', 'I', 'F', 'X'}
	signatureLittle = [4]byte{'X', 'F', 'I', 'R'}
)

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the big-endian engine when bigEndian is true and the
// little-endian engine otherwise.
func GetEngine(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBigEndian reports whether engine decodes big-endian data.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// FromSignature returns the engine selected by a 4-byte movie signature.
//
// Returns false if sig is shorter than 4 bytes or is neither "RIFX" nor "XFIR".
func FromSignature(sig []byte) (EndianEngine, bool) {
	if len(sig) < 4 {
		return nil, false
	}

	switch [4]byte(sig[:4]) {
	case signatureBig:
		return binary.BigEndian, true
	case signatureLittle:
		return binary.LittleEndian, true
	default:
		return nil, false
	}
}

// Signature returns a fresh copy of the 4 signature bytes a movie written with
// engine starts with.
func Signature(engine EndianEngine) []byte {
	sig := signatureLittle
	if IsBigEndian(engine) {
		sig = signatureBig
	}

	return sig[:]
}
