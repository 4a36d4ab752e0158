// Package base provides a foundation for transport layers of pine,
// implementing the core round trip independent of the specific network
// protocol (TCP, Unix sockets). It serves as a base layer that is extended
// with protocol-specific connectors.
//
// The package focuses on:
//   - Protocol-agnostic client and server transport implementations
//   - One connection per client request: dial, write, read, close
//   - Mapping transport faults to common.ErrConnectionFailed and a failed
//     status byte to common.ErrCommandFailed
//
// Key Components:
//
//   - IClientConnector/IServerConnector: Interfaces for protocol-specific operations
//     that allow extending the base transport with different network protocols.
//
//   - clientTransport: Core client implementation. It keeps no connection
//     state between calls, so concurrent callers never share a socket and a
//     failure is bounded to a single round trip.
//
//   - serverTransport: Core server implementation that accepts connections and
//     hands the buffered request stream to the registered handler.
//
// Reply Handling:
//
//	The client reads the status byte first. A failed status ends the round
//	trip immediately, otherwise exactly the expected number of reply bytes is
//	read with io.ReadFull. The server closes a connection after it sent a
//	failed status, since the rest of the request stream can not be parsed
//	reliably anymore.
//
// Performance Optimizations:
//
//   - Buffer Pooling: The server uses a sync.Pool of buffered readers, reducing
//     GC pressure and memory allocations.
//
// Thread Safety:
//
//	All public methods are thread-safe. The server creates a dedicated
//	goroutine for each connection.
package base
