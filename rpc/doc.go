// Package rpc provides the binary memory protocol spoken between pine and the
// IPC server of an emulator. It is organized in layers, from the bytes on the
// wire up to the client facade.
//
// The package is organized into several subpackages:
//
//   - common: Opcodes, status tags, sentinel errors, configuration structures
//     and logging shared by all other packages.
//
//   - wire: Little-endian encoding of fixed width integers into byte buffers.
//
//   - message: Layout of single commands and MultiCommand batches, reply sizes
//     and the finalized batch plan.
//
//   - transport: Socket round trips with pluggable implementations
//     (Unix sockets, TCP) and the platform default endpoint.
//
//   - client: The client facade with immediate reads and writes and the
//     exclusive batch session.
//
//   - server: A reference server executing requests against an emulated
//     address space, used by tests and the serve command.
package rpc
