// Package client implements the client side of the memory inspection protocol.
// A Client reads and writes fixed width integers in the memory of the emulated
// process, either one command per round trip (immediate mode) or many commands
// in a single MultiCommand message (batch mode).
//
// Key Components:
//
//   - NewRPCClient: Factory function that creates a client on top of a transport
//     (see the unix, tcp and local transport packages).
//
//   - Read / Write: Generic immediate calls. The opcode is chosen by the width
//     of the type parameter. ReadWidth and WriteWidth take the width at runtime
//     and fail with common.ErrUnsupportedWidth for widths other than 1, 2, 4 and 8.
//
//   - Begin / TryBegin: Start a batch session. The returned Batch is an exclusive
//     handle, sub-commands are added with BatchRead / BatchWrite and the session
//     ends with Finalize, which returns a message.Plan owning its own buffers.
//
//   - Execute: Sends a plan and fills its reply. Results are decoded with
//     message.Get at the offsets recorded in the plan.
//
// Usage Example:
//
//	c, _ := client.NewRPCClient(common.ClientConfig{
//	  Transport: common.ClientTransportConfig{Endpoint: local.Endpoint},
//	}, local.NewClientTransport())
//
//	// Immediate mode
//	_ = client.Write[uint8](c, 0x00347D34, 7)
//	v, _ := client.Read[uint32](c, 0x00347D34)
//
//	// Batch mode
//	b := c.Begin()
//	defer b.Discard()
//	_ = client.BatchWrite[uint8](b, 0x00347D34, 1)
//	_ = client.BatchRead[uint16](b, 0x00347D34)
//	plan, _ := b.Finalize()
//
//	reply, _ := c.Execute(plan)
//	value := message.Get[uint16](reply, plan.Offsets[0])
//
// Thread Safety:
//
//	The Client is safe for concurrent use. Immediate calls are serialized, a batch
//	session blocks immediate calls and other sessions from Begin until Finalize.
//	Every round trip opens its own connection, so no replies can interleave.
package client
