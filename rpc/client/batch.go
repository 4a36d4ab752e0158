package client

import (
	"fmt"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/message"
	"github.com/ValentinKolb/pine/rpc/wire"
	"slices"
)

// Batch is the exclusive handle of a batch session. It is obtained from
// Client.Begin and is valid until Finalize or Discard. A Batch must only be
// used by the goroutine that began it.
type Batch struct {
	client *Client
	arena  *arena

	building bool
	cursor   int // next write position in arena.batch
	replyLen int // expected reply size so far (starts with the status byte)
	count    int // number of sub-commands
}

// Begin starts a batch session. It blocks until no other batch is being built
// and no immediate call is in flight.
func (c *Client) Begin() *Batch {
	c.batchMu.Lock()
	c.ipcMu.Lock()
	return c.newBatch()
}

// TryBegin starts a batch session without blocking.
// It returns common.ErrAlreadyBuilding if another session is being built.
func (c *Client) TryBegin() (*Batch, error) {
	if !c.batchMu.TryLock() {
		return nil, common.ErrAlreadyBuilding
	}
	c.ipcMu.Lock()
	return c.newBatch(), nil
}

// newBatch resets the batch area, both locks must be held
func (c *Client) newBatch() *Batch {
	a := c.arena
	a.offsets = a.offsets[:0]

	return &Batch{
		client:   c,
		arena:    a,
		building: true,
		cursor:   message.PutBatchHeader(a.batch),
		replyLen: message.StatusSize,
	}
}

// --------------------------------------------------------------------------
// Building
// --------------------------------------------------------------------------

// BatchRead adds a read of a T at address to the batch
func BatchRead[T wire.Value](b *Batch, address uint32) error {
	return b.ReadWidth(address, wire.Width[T]())
}

// BatchWrite adds a write of value at address to the batch
func BatchWrite[T wire.Value](b *Batch, address uint32, value T) error {
	return b.WriteWidth(address, wire.Width[T](), uint64(value))
}

// ReadWidth adds a read of width bytes at address. The reply offset of the
// result is recorded and available as Plan.Offsets after Finalize.
func (b *Batch) ReadWidth(address uint32, width int) error {
	if err := b.check(); err != nil {
		return err
	}
	op, err := message.ReadOpcode(width)
	if err != nil {
		return err
	}

	b.arena.reserve(b.cursor, message.ReadSize())
	next := message.FormatHeader(b.arena.batch, b.cursor, address, op)

	b.arena.offsets = append(b.arena.offsets, b.replyLen)
	b.replyLen += width
	b.cursor = next
	b.count++
	return nil
}

// WriteWidth adds a write of the low width bytes of value at address.
// Writes contribute no bytes to the reply and record no offset.
func (b *Batch) WriteWidth(address uint32, width int, value uint64) error {
	if err := b.check(); err != nil {
		return err
	}
	op, err := message.WriteOpcode(width)
	if err != nil {
		return err
	}

	b.arena.reserve(b.cursor, message.WriteSize(width))
	next := message.FormatHeader(b.arena.batch, b.cursor, address, op)
	wire.PutUint(b.arena.batch, next, width, value)

	b.cursor = next + width
	b.count++
	return nil
}

// Len returns the number of sub-commands added so far
func (b *Batch) Len() int {
	return b.count
}

// --------------------------------------------------------------------------
// Finishing
// --------------------------------------------------------------------------

// Finalize writes the argument count, copies the batch into freshly owned
// buffers and ends the session. The returned plan stays valid after the
// next Begin.
func (b *Batch) Finalize() (*message.Plan, error) {
	if !b.building {
		return nil, common.ErrNotBuilding
	}

	message.PutBatchCount(b.arena.batch, b.count)

	msg := make([]byte, b.cursor)
	copy(msg, b.arena.batch[:b.cursor])

	plan := &message.Plan{
		Message: message.Message{Buffer: msg, Size: len(msg)},
		Reply:   message.Reply{Buffer: make([]byte, b.replyLen), Size: b.replyLen},
		Offsets: slices.Clone(b.arena.offsets),
		Count:   b.count,
	}

	b.release()
	return plan, nil
}

// Discard ends the session without producing a plan.
// It is a no-op on a finalized or discarded batch, so it can be deferred.
func (b *Batch) Discard() {
	if b.building {
		Logger.Debugf("Discarding batch with %d commands", b.count)
		b.release()
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// check returns an error if no more sub-commands can be added
func (b *Batch) check() error {
	if !b.building {
		return common.ErrNotBuilding
	}
	if b.count >= message.MaxBatchCommands {
		return fmt.Errorf("%w: %d commands", common.ErrBatchFull, b.count)
	}
	return nil
}

// release unlocks the session in reverse lock order
func (b *Batch) release() {
	b.building = false
	b.client.ipcMu.Unlock()
	b.client.batchMu.Unlock()
}
