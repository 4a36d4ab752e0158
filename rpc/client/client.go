package client

import (
	"fmt"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/message"
	"github.com/ValentinKolb/pine/rpc/transport"
	"github.com/ValentinKolb/pine/rpc/wire"
	"github.com/lni/dragonboat/v4/logger"
	"sync"
	"time"
)

var (
	Logger = logger.GetLogger("rpc")
)

// DefaultBatchCapacity is used when the config does not set a batch capacity
const DefaultBatchCapacity = 64

// Client reads and writes the memory of the emulated process.
//
// Immediate calls (Read, Write, ReadWidth, WriteWidth) encode into scratch
// buffers owned by the client and are serialized by the immediate-call lock.
// A batch session holds the batch lock and the immediate-call lock from Begin
// until Finalize, so immediate calls wait while a batch is being built.
type Client struct {
	config    common.ClientConfig
	transport transport.IRPCClientTransport

	batchMu sync.Mutex // held from Begin to Finalize, always locked before ipcMu
	ipcMu   sync.Mutex // guards arena
	arena   *arena
}

// NewRPCClient creates a new client and connects the transport
// The function takes a config and a transport as parameters
func NewRPCClient(config common.ClientConfig, transport transport.IRPCClientTransport) (*Client, error) {
	if config.BatchCapacity <= 0 {
		config.BatchCapacity = DefaultBatchCapacity
	}

	// Connect the transport
	if err := transport.Connect(config); err != nil {
		return nil, err
	}

	return &Client{
		config:    config,
		transport: transport,
		arena:     newArena(config.BatchCapacity),
	}, nil
}

// Config returns the configuration the client was created with
func (c *Client) Config() common.ClientConfig {
	return c.config
}

// Close closes the underlying transport
func (c *Client) Close() error {
	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Immediate Mode
// --------------------------------------------------------------------------

// Read reads a T at address
func Read[T wire.Value](c *Client, address uint32) (T, error) {
	v, err := c.ReadWidth(address, wire.Width[T]())
	return T(v), err
}

// Write writes value at address
func Write[T wire.Value](c *Client, address uint32, value T) error {
	return c.WriteWidth(address, wire.Width[T](), uint64(value))
}

// ReadWidth reads width bytes at address and returns them as unsigned integer
func (c *Client) ReadWidth(address uint32, width int) (uint64, error) {
	op, err := message.ReadOpcode(width)
	if err != nil {
		return 0, err
	}

	a, release := c.borrow()
	defer release()

	n := message.FormatHeader(a.send[:], 0, address, op)
	reply := a.reply[:message.ReadReplySize(width)]

	if err := c.roundTrip(op, a.send[:n], reply); err != nil {
		return 0, fmt.Errorf("read %d bytes at 0x%08x: %w", width, address, err)
	}

	return wire.Uint(reply, message.StatusSize, width), nil
}

// WriteWidth writes the low width bytes of value at address
func (c *Client) WriteWidth(address uint32, width int, value uint64) error {
	op, err := message.WriteOpcode(width)
	if err != nil {
		return err
	}

	a, release := c.borrow()
	defer release()

	n := message.FormatHeader(a.send[:], 0, address, op)
	wire.PutUint(a.send[:], n, width, value)
	n += width

	if err := c.roundTrip(op, a.send[:n], a.reply[:message.WriteReplySize]); err != nil {
		return fmt.Errorf("write %d bytes at 0x%08x: %w", width, address, err)
	}
	return nil
}

// --------------------------------------------------------------------------
// Batch Mode
// --------------------------------------------------------------------------

// Execute sends a finalized batch and fills plan.Reply.
// The plan owns its buffers, so no client lock is taken and Execute may be
// retried with the same plan after a failure. A plan must not be executed by
// two goroutines at the same time.
func (c *Client) Execute(plan *message.Plan) (*message.Reply, error) {
	batchCommands.Add(plan.Count)

	if err := c.roundTrip(common.OpMultiCommand, plan.Message.Bytes(), plan.Reply.Bytes()); err != nil {
		return nil, fmt.Errorf("execute batch of %d commands: %w", plan.Count, err)
	}
	return &plan.Reply, nil
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// roundTrip sends req and fills reply, recording metrics for op
func (c *Client) roundTrip(op common.Opcode, req, reply []byte) error {
	start := time.Now()
	err := c.transport.Send(req, reply)
	observe(op, start, err)

	if err != nil {
		Logger.Debugf("%s request (%d bytes) failed: %v", op, len(req), err)
	}
	return err
}
