package message

import (
	"fmt"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/wire"
)

const (
	// HeaderSize is opcode (1 byte) plus address (4 bytes)
	HeaderSize = 5
	// BatchHeaderSize is the multi command opcode plus the 2 byte argument count
	BatchHeaderSize = 3
	// StatusSize is the size of the status byte leading every reply
	StatusSize = 1
	// MaxValueWidth is the widest supported value (64 bit)
	MaxValueWidth = 8
	// MaxCommandSize is the largest encoded single command (write64)
	MaxCommandSize = HeaderSize + MaxValueWidth
	// MaxReplySize is the largest reply to a single command (read64)
	MaxReplySize = StatusSize + MaxValueWidth
	// MaxBatchCommands is the largest argument count the 16 bit field can hold
	MaxBatchCommands = 0xFFFF
	// WriteReplySize is the size of the reply to a write (status only)
	WriteReplySize = StatusSize
)

// --------------------------------------------------------------------------
// Opcode selection
// --------------------------------------------------------------------------

// ReadOpcode returns the read opcode for a value of width bytes
func ReadOpcode(width int) (common.Opcode, error) {
	switch width {
	case 1:
		return common.OpRead8, nil
	case 2:
		return common.OpRead16, nil
	case 4:
		return common.OpRead32, nil
	case 8:
		return common.OpRead64, nil
	default:
		return 0, fmt.Errorf("%w: %d bytes", common.ErrUnsupportedWidth, width)
	}
}

// WriteOpcode returns the write opcode for a value of width bytes
func WriteOpcode(width int) (common.Opcode, error) {
	switch width {
	case 1:
		return common.OpWrite8, nil
	case 2:
		return common.OpWrite16, nil
	case 4:
		return common.OpWrite32, nil
	case 8:
		return common.OpWrite64, nil
	default:
		return 0, fmt.Errorf("%w: %d bytes", common.ErrUnsupportedWidth, width)
	}
}

// --------------------------------------------------------------------------
// Layout
// --------------------------------------------------------------------------

// FormatHeader writes the opcode and the address at off into buf and returns
// the offset right after the header (off + HeaderSize).
func FormatHeader(buf []byte, off int, address uint32, op common.Opcode) int {
	buf[off] = byte(op)
	wire.PutUint(buf, off+1, 4, uint64(address))
	return off + HeaderSize
}

// ReadSize returns the encoded size of a read command
func ReadSize() int {
	return HeaderSize
}

// WriteSize returns the encoded size of a write command of width bytes
func WriteSize(width int) int {
	return HeaderSize + width
}

// ReadReplySize returns the size of the reply to a single read of width bytes
func ReadReplySize(width int) int {
	return StatusSize + width
}

// PutRead encodes a read command of width bytes at off into buf.
// It returns the offset after the command.
func PutRead(buf []byte, off int, address uint32, width int) (int, error) {
	op, err := ReadOpcode(width)
	if err != nil {
		return off, err
	}
	return FormatHeader(buf, off, address, op), nil
}

// PutWrite encodes a write command of width bytes carrying value at off into buf.
// It returns the offset after the command.
func PutWrite(buf []byte, off int, address uint32, width int, value uint64) (int, error) {
	op, err := WriteOpcode(width)
	if err != nil {
		return off, err
	}
	next := FormatHeader(buf, off, address, op)
	wire.PutUint(buf, next, width, value)
	return next + width, nil
}

// PutBatchHeader writes the multi command opcode at offset 0 and returns the
// offset of the first sub-command. The count is written by PutBatchCount.
func PutBatchHeader(buf []byte) int {
	buf[0] = byte(common.OpMultiCommand)
	return BatchHeaderSize
}

// PutBatchCount writes the argument count into the batch header
func PutBatchCount(buf []byte, count int) {
	wire.PutUint(buf, 1, 2, uint64(count))
}
