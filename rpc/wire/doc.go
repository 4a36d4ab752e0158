// Package wire implements the fixed width little-endian integer codec of the
// memory protocol. It has no state and performs no I/O.
//
// The codec does not check bounds. Callers (the message builder and the
// client) size every buffer from the opcode table before encoding, so a
// buffer is always large enough for the value written into it.
//
// Two forms are provided:
//
//   - Encode / Decode are generic over Value, the closed set of fixed width
//     integer types. The width is taken from the type.
//
//   - PutUint / Uint take the width as a runtime parameter and carry the
//     value as uint64. They back the runtime width API of the client and the
//     reference server.
package wire
