package client

import (
	"github.com/ValentinKolb/pine/rpc/message"
)

// arena holds the scratch buffers that are reused across calls.
// It must only be touched while the immediate-call lock of the client is held.
type arena struct {
	// send and reply are sized for the largest single command and reply
	send  [message.MaxCommandSize]byte
	reply [message.MaxReplySize]byte

	// batch is the scratch area a batch session builds its message in
	batch []byte
	// offsets are the reply offsets of the read sub-commands of the current batch
	offsets []int
}

// newArena creates an arena whose batch area fits capacity sub-commands
// of the largest size before it has to grow.
func newArena(capacity int) *arena {
	return &arena{
		batch:   make([]byte, message.BatchHeaderSize+capacity*message.MaxCommandSize),
		offsets: make([]int, 0, capacity),
	}
}

// reserve makes sure n more bytes fit into the batch area after cursor.
// The area doubles until the bytes fit, everything before cursor is preserved.
func (a *arena) reserve(cursor, n int) {
	if cursor+n <= len(a.batch) {
		return
	}

	size := max(len(a.batch), message.BatchHeaderSize+message.MaxCommandSize)
	for size < cursor+n {
		size *= 2
	}

	grown := make([]byte, size)
	copy(grown, a.batch[:cursor])
	a.batch = grown
}

// borrow locks the arena for the caller. The returned function releases it again.
func (c *Client) borrow() (*arena, func()) {
	c.ipcMu.Lock()
	return c.arena, c.ipcMu.Unlock
}
