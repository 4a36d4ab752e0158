package wire

import (
	"encoding/binary"
	"unsafe"
)

// Value is the set of types that can be read from or written to memory
type Value interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// Width returns the size of T in bytes
func Width[T Value]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// Encode writes the Width[T]() bytes of v in little-endian order at off into dst
// and returns dst for chaining.
func Encode[T Value](dst []byte, v T, off int) []byte {
	PutUint(dst, off, Width[T](), uint64(v))
	return dst
}

// Decode reads Width[T]() bytes at off from src as a little-endian T
func Decode[T Value](src []byte, off int) T {
	return T(Uint(src, off, Width[T]()))
}

// PutUint writes the low width bytes of v in little-endian order at off into dst.
// Widths other than 1, 2, 4 and 8 write nothing.
func PutUint(dst []byte, off int, width int, v uint64) {
	switch width {
	case 1:
		dst[off] = uint8(v)
	case 2:
		binary.LittleEndian.PutUint16(dst[off:], uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(dst[off:], uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(dst[off:], v)
	}
}

// Uint reads width bytes at off from src as a little-endian unsigned integer.
// Widths other than 1, 2, 4 and 8 read as 0.
func Uint(src []byte, off int, width int) uint64 {
	switch width {
	case 1:
		return uint64(src[off])
	case 2:
		return uint64(binary.LittleEndian.Uint16(src[off:]))
	case 4:
		return uint64(binary.LittleEndian.Uint32(src[off:]))
	case 8:
		return binary.LittleEndian.Uint64(src[off:])
	default:
		return 0
	}
}
