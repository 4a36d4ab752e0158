// Package common provides core data structures and utilities shared across
// the pine client, transport and server packages. It defines the protocol
// enumerations, the error taxonomy, configuration structures and logging.
//
// The package focuses on:
//   - Opcode and Status definitions of the binary memory protocol
//   - Sentinel errors that callers can test with errors.Is
//   - Configuration structures for client and server components
//   - Custom logging implementation integrated with the Dragonboat logger
//
// Key Components:
//
//   - Opcode: The one byte tag that starts every request. Read and write
//     variants exist for 8, 16, 32 and 64 bit values, OpMultiCommand frames
//     a batch of sub-commands.
//
//   - Status: The first byte of every reply (StatusOk or StatusFail).
//
//   - ClientConfig: Configuration for the client transport, including the
//     endpoint, an optional socket timeout and TCP tuning.
//
//   - ServerConfig: Configuration for the reference server used in tests and
//     by the serve command.
//
//   - Logger: Custom logging implementation that plugs into the Dragonboat
//     logger factory so that every package logs with the same format.
package common
