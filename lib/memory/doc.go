// Package memory provides the emulated address space used by the reference
// server. It stands in for the memory of the emulated process so that the
// client can be exercised without a running emulator.
//
// The paged implementation allocates PageSize blocks lazily on first write,
// so a 32 MiB address space costs nothing until it is used. Pages are
// indexed through a concurrent xsync map and guarded individually, accesses
// that cross a page boundary are split. Values are stored little-endian,
// like the memory of the emulated machine.
package memory
