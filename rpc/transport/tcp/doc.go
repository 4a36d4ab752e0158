// Package tcp implements the pine transport over loopback TCP. The emulator
// uses it on platforms without Unix domain sockets (port 28011).
//
// This package builds on the base package's transport functionality and adds
// the TCP socket options from common.TCPConf (TCP_NODELAY, keep-alive and
// linger). See the base package documentation for the round trip semantics.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//
//   - serverConnector: TCP-specific implementation of base.IServerConnector
package tcp
