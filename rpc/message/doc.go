// Package message builds the byte layout of protocol requests and describes
// the buffers that carry requests, replies and finalized batches.
//
// Request layout (all integers little-endian):
//
//	read:   [opcode:1][address:4]
//	write:  [opcode:1][address:4][value:width]
//	batch:  [0xFF][argument_count:2][sub-command]*
//
// Reply layout:
//
//	read:   [status:1][value:width]
//	write:  [status:1]
//	batch:  [status:1][read results in issue order]
//
// The builder functions write into caller provided buffers at a given offset
// and never allocate. The opcode is derived from the value width, any width
// other than 1, 2, 4 or 8 bytes fails with common.ErrUnsupportedWidth before
// the buffer is touched.
package message
