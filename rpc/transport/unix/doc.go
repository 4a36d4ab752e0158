// Package unix implements the pine transport over Unix domain sockets. This
// is the default transport on every platform except Windows. The emulator
// listens on /tmp/pcsx2.sock.
//
// This package extends the base transport layer with Unix socket-specific
// connectors while inheriting the round trip and error mapping from the base
// package.
//
// Key Components:
//
//   - clientConnector: Establishes connections using Unix domain sockets
//
//   - serverConnector: Creates Unix socket listeners (removing stale socket
//     files first) for the reference server
package unix
