//go:build !windows

package local

import (
	"github.com/ValentinKolb/pine/rpc/transport"
	"github.com/ValentinKolb/pine/rpc/transport/unix"
)

const (
	// Network is the socket family the emulator listens on
	Network = "unix"
	// Endpoint is the fixed socket path of the emulator
	Endpoint = UnixEndpoint
)

// NewClientTransport creates the client transport for this platform
func NewClientTransport() transport.IRPCClientTransport {
	return unix.NewUnixClientTransport()
}

// NewServerTransport creates the server transport for this platform
func NewServerTransport() transport.IRPCServerTransport {
	return unix.NewUnixDefaultServerTransport()
}
