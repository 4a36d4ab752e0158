//go:build windows

package local

import (
	"github.com/ValentinKolb/pine/rpc/transport"
	"github.com/ValentinKolb/pine/rpc/transport/tcp"
)

const (
	// Network is the socket family the emulator listens on
	Network = "tcp"
	// Endpoint is the fixed loopback address of the emulator
	Endpoint = TCPEndpoint
)

// NewClientTransport creates the client transport for this platform
func NewClientTransport() transport.IRPCClientTransport {
	return tcp.NewTCPClientTransport()
}

// NewServerTransport creates the server transport for this platform
func NewServerTransport() transport.IRPCServerTransport {
	return tcp.NewTCPDefaultServerTransport()
}
