// Package server implements a reference server for the memory inspection
// protocol. It stands in for the emulator during tests and local development
// and executes requests against a memory.IMemory.
//
// Requests are decoded from the buffered connection reader of the transport
// (see decode.go), executed by an IRPCServerAdapter and answered with a reply
// of the form [status][read results...]. A whole request, including every
// sub-command of a batch, executes under one lock, so batches are atomic and
// run in issue order. Any failing command turns the reply into a single
// StatusFail byte, after which the transport closes the connection.
//
// Usage Example:
//
//	config := common.ServerConfig{Endpoint: "/tmp/pcsx2.sock", MemorySize: 32 << 20}
//	s := server.NewRPCServer(config, unix.NewUnixDefaultServerTransport(), memory.NewPagedMemory(config.MemorySize))
//	go s.Serve()
//	defer s.Close()
package server
