package memory

import "errors"

// ErrOutOfRange is returned for accesses that do not fit into the address space
var ErrOutOfRange = errors.New("address out of range")

// IMemory is the emulated address space the reference server executes commands on.
// Values are stored little-endian. Width must be 1, 2, 4 or 8.
type IMemory interface {
	// Read returns the width bytes at address as unsigned integer
	Read(address uint32, width int) (uint64, error)
	// Write stores the low width bytes of value at address
	Write(address uint32, width int, value uint64) error
	// Size returns the size of the address space in bytes
	Size() uint64
}
