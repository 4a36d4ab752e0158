// Package transport defines the interfaces and abstractions for the socket
// communication between the pine client and the emulator. It provides a
// common contract that all transport implementations must fulfill.
//
// The package focuses on:
//   - Defining clear interfaces for client and server transport layers
//   - One blocking send-then-receive cycle per request on its own connection
//   - Enabling multiple transport implementations (TCP, Unix sockets)
//
// Key Components:
//
//   - IRPCClientTransport: Interface for client-side transport implementations that
//     performs a single round trip per call.
//
//   - IRPCServerTransport: Interface for server-side transport implementations that
//     accepts connections and hands requests to a handler.
//
//   - ServerHandleFunc: Function type for request handling callbacks.
//
// Subpackages base, unix and tcp implement the interfaces, package local picks
// the platform default (unix socket /tmp/pcsx2.sock, or TCP port 28011 on
// Windows).
package transport
