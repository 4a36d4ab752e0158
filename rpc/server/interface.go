package server

import (
	"github.com/ValentinKolb/pine/lib/memory"
)

// IRPCServerAdapter executes decoded requests against an address space.
type IRPCServerAdapter interface {
	// Handle executes all commands of one request in issue order and returns
	// the complete reply: the status byte followed by the results of all reads.
	// If a command fails the reply is a single StatusFail byte.
	Handle(cmds []Command, mem memory.IMemory) (resp []byte)
}
