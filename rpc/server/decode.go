package server

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/message"
	"github.com/ValentinKolb/pine/rpc/wire"
	"io"
)

// errUnknownOpcode is returned for opcodes whose payload length is unknown.
// The rest of the stream can not be parsed after such an opcode.
var errUnknownOpcode = errors.New("unknown opcode")

// Command is one decoded read or write
type Command struct {
	Op      common.Opcode
	Address uint32
	Value   uint64 // only set for writes
}

// readRequest decodes one request (a single command or a batch) from r and
// appends its commands to cmds. It returns io.EOF if the stream ended before
// the first byte and io.ErrUnexpectedEOF if it ended inside the request.
func readRequest(r *bufio.Reader, cmds []Command) ([]Command, error) {
	b, err := r.ReadByte()
	if err != nil {
		return cmds, err
	}
	op := common.Opcode(b)

	if op != common.OpMultiCommand {
		cmd, err := readCommand(r, op)
		if err != nil {
			return cmds, err
		}
		return append(cmds, cmd), nil
	}

	// Batch: [0xFF][count:2][sub-command]*
	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return cmds, unexpected(err)
	}
	count := int(wire.Uint(hdr[:], 0, 2))

	for i := 0; i < count; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return cmds, unexpected(err)
		}
		cmd, err := readCommand(r, common.Opcode(b))
		if err != nil {
			return cmds, fmt.Errorf("sub-command %d of %d: %w", i, count, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

// readCommand decodes address and value of a single read or write whose
// opcode has already been consumed
func readCommand(r *bufio.Reader, op common.Opcode) (Command, error) {
	if !op.IsRead() && !op.IsWrite() {
		return Command{}, fmt.Errorf("%w: 0x%02x", errUnknownOpcode, byte(op))
	}

	var buf [message.MaxCommandSize - 1]byte
	n := message.HeaderSize - 1
	if op.IsWrite() {
		n += op.Width()
	}
	if _, err := io.ReadFull(r, buf[:n]); err != nil {
		return Command{}, unexpected(err)
	}

	cmd := Command{Op: op, Address: uint32(wire.Uint(buf[:], 0, 4))}
	if op.IsWrite() {
		cmd.Value = wire.Uint(buf[:], 4, op.Width())
	}
	return cmd, nil
}

// unexpected turns io.EOF inside a request into io.ErrUnexpectedEOF
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
