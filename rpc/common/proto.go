package common

import (
	"encoding/json"
	"fmt"
)

// --------------------------------------------------------------------------
// Opcode Definition
// --------------------------------------------------------------------------

// Opcode is the one byte tag at the start of every request (and of every
// sub-command inside a batch). It determines the shape of the payload.
type Opcode uint8

const (
	OpRead8        Opcode = 0    // Read 8 bit value from memory
	OpRead16       Opcode = 1    // Read 16 bit value from memory
	OpRead32       Opcode = 2    // Read 32 bit value from memory
	OpRead64       Opcode = 3    // Read 64 bit value from memory
	OpWrite8       Opcode = 4    // Write 8 bit value to memory
	OpWrite16      Opcode = 5    // Write 16 bit value to memory
	OpWrite32      Opcode = 6    // Write 32 bit value to memory
	OpWrite64      Opcode = 7    // Write 64 bit value to memory
	OpMultiCommand Opcode = 0xFF // Several commands in one message
)

// String returns the string representation of an Opcode.
func (o Opcode) String() string {
	switch o {
	case OpRead8:
		return "read8"
	case OpRead16:
		return "read16"
	case OpRead32:
		return "read32"
	case OpRead64:
		return "read64"
	case OpWrite8:
		return "write8"
	case OpWrite16:
		return "write16"
	case OpWrite32:
		return "write32"
	case OpWrite64:
		return "write64"
	case OpMultiCommand:
		return "multi"
	default:
		return "unknown"
	}
}

// IsRead reports whether the opcode is one of the read variants
func (o Opcode) IsRead() bool {
	return o <= OpRead64
}

// IsWrite reports whether the opcode is one of the write variants
func (o Opcode) IsWrite() bool {
	return o >= OpWrite8 && o <= OpWrite64
}

// Width returns the value width in bytes of a read or write opcode.
// It returns 0 for the multi command and for unknown opcodes.
func (o Opcode) Width() int {
	switch o {
	case OpRead8, OpWrite8:
		return 1
	case OpRead16, OpWrite16:
		return 2
	case OpRead32, OpWrite32:
		return 4
	case OpRead64, OpWrite64:
		return 8
	default:
		return 0
	}
}

// MarshalJSON implements the json.Marshaller interface for Opcode.
func (o Opcode) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for Opcode.
func (o *Opcode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	for _, op := range []Opcode{
		OpRead8, OpRead16, OpRead32, OpRead64,
		OpWrite8, OpWrite16, OpWrite32, OpWrite64,
		OpMultiCommand,
	} {
		if op.String() == s {
			*o = op
			return nil
		}
	}
	return fmt.Errorf("unknown opcode: %s", s)
}

// --------------------------------------------------------------------------
// Status Definition
// --------------------------------------------------------------------------

// Status is the first byte of every reply
type Status uint8

const (
	StatusOk   Status = 0x00 // Command(s) completed
	StatusFail Status = 0xFF // Command(s) failed, the rest of the reply is undefined
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusFail:
		return "fail"
	default:
		return fmt.Sprintf("status(0x%02x)", uint8(s))
	}
}
