package server

import (
	"github.com/ValentinKolb/pine/lib/memory"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/message"
	"github.com/ValentinKolb/pine/rpc/wire"
)

// NewMemoryServerAdapter creates the adapter executing commands on memory
func NewMemoryServerAdapter() IRPCServerAdapter {
	return &memoryServerAdapterImpl{}
}

type memoryServerAdapterImpl struct{}

func (adapter *memoryServerAdapterImpl) Handle(cmds []Command, mem memory.IMemory) []byte {
	// Check for nil memory
	if mem == nil {
		return failReply()
	}

	size := message.StatusSize
	for _, cmd := range cmds {
		if cmd.Op.IsRead() {
			size += cmd.Op.Width()
		}
	}

	resp := make([]byte, size)
	resp[0] = byte(common.StatusOk)
	off := message.StatusSize

	for _, cmd := range cmds {
		width := cmd.Op.Width()

		switch {
		case cmd.Op.IsRead():
			v, err := mem.Read(cmd.Address, width)
			if err != nil {
				Logger.Debugf("%s at 0x%08x failed: %v", cmd.Op, cmd.Address, err)
				return failReply()
			}
			wire.PutUint(resp, off, width, v)
			off += width
		case cmd.Op.IsWrite():
			if err := mem.Write(cmd.Address, width, cmd.Value); err != nil {
				Logger.Debugf("%s at 0x%08x failed: %v", cmd.Op, cmd.Address, err)
				return failReply()
			}
		default:
			return failReply()
		}

		commandCounter(cmd.Op).Inc()
	}

	return resp
}

// failReply returns the reply of a failed request
func failReply() []byte {
	return []byte{byte(common.StatusFail)}
}
