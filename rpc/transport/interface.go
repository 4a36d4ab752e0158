package transport

import (
	"bufio"
	"github.com/ValentinKolb/pine/rpc/common"
	"net"
)

// --------------------------------------------------------------------------
// Server Transport
// --------------------------------------------------------------------------

// ServerHandleFunc handles one request read from r and returns the complete reply.
// It returns io.EOF if the peer closed the connection between two requests,
// any other error closes the connection without a reply.
type ServerHandleFunc func(r *bufio.Reader) (resp []byte, err error)

// IRPCServerTransport is the interface for the server side of the transport layer
type IRPCServerTransport interface {
	// RegisterHandler registers the handler that is called for every request
	RegisterHandler(handler ServerHandleFunc)
	// Listen binds the listener for the configured endpoint, it does not block
	Listen(config common.ServerConfig) error
	// Serve accepts connections until Close is called
	Serve() error
	// Addr returns the address the transport is listening on
	Addr() net.Addr
	// Close stops accepting connections and closes all open connections
	Close() error
}

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IRPCClientTransport is the interface for the RPC client transport
type IRPCClientTransport interface {
	// Connect initializes the transport with the given configuration.
	// No connection is kept open, every Send dials on its own.
	Connect(config common.ClientConfig) error
	// Send opens a connection, writes req, reads exactly len(reply) bytes into
	// reply and closes the connection again. A reply with StatusFail returns
	// common.ErrCommandFailed, any transport fault common.ErrConnectionFailed.
	Send(req []byte, reply []byte) error
	// Close releases the transport, Send fails afterwards
	Close() error
}
