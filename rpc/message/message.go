package message

import (
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/wire"
)

// --------------------------------------------------------------------------
// Buffers
// --------------------------------------------------------------------------

// Message is an encoded request. Size is the number of meaningful bytes in Buffer.
type Message struct {
	Buffer []byte
	Size   int
}

// Bytes returns the meaningful part of the message
func (m Message) Bytes() []byte {
	return m.Buffer[:m.Size]
}

// Reply is a reply buffer sized exactly to the expected reply of a request
type Reply struct {
	Buffer []byte
	Size   int
}

// Bytes returns the meaningful part of the reply
func (r Reply) Bytes() []byte {
	return r.Buffer[:r.Size]
}

// Status returns the status byte of the reply
func (r Reply) Status() common.Status {
	return common.Status(r.Buffer[0])
}

// Get decodes a T at offset from the reply. Offsets come from Plan.Offsets
// (batch) or are 1 for single reads.
func Get[T wire.Value](r *Reply, offset int) T {
	return wire.Decode[T](r.Buffer, offset)
}

// --------------------------------------------------------------------------
// Batch Plan
// --------------------------------------------------------------------------

// Plan is a finalized batch. It owns its buffers and stays valid after the
// batch session that produced it has been reused.
type Plan struct {
	// Message is the complete multi command request
	Message Message
	// Reply is sized for the batch reply but only filled by Execute
	Reply Reply
	// Offsets holds the reply offset of each read sub-command in issue order
	Offsets []int
	// Count is the number of sub-commands (reads and writes)
	Count int
}

// Len returns the number of read results the plan will produce
func (p *Plan) Len() int {
	return len(p.Offsets)
}

// Uint returns the i-th read result as unsigned integer of width bytes
func (p *Plan) Uint(i int, width int) uint64 {
	return wire.Uint(p.Reply.Buffer, p.Offsets[i], width)
}
