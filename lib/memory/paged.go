package memory

import (
	"fmt"
	"github.com/ValentinKolb/pine/rpc/wire"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"sync"
)

var Logger = logger.GetLogger("memory")

const (
	pageBits = 12
	// PageSize is the allocation granularity of the paged memory
	PageSize = 1 << pageBits
	pageMask = PageSize - 1

	// MaxSize is the largest memory a 32-bit address can reach
	MaxSize = uint64(1) << 32
)

// page is one PageSize block of memory
type page struct {
	mu   sync.RWMutex
	data [PageSize]byte
}

// pagedMemory is a sparse address space: pages are only allocated on first
// write, unallocated pages read as zero.
type pagedMemory struct {
	size  uint64
	pages *xsync.MapOf[uint32, *page]
}

// NewPagedMemory creates a sparse memory of size bytes. Sizes above MaxSize
// are clamped, addresses are 32 bits wide.
func NewPagedMemory(size uint64) IMemory {
	if size > MaxSize {
		Logger.Warningf("Memory size 0x%x exceeds the 32-bit address space, using 0x%x", size, MaxSize)
		size = MaxSize
	}
	return &pagedMemory{
		size:  size,
		pages: xsync.NewMapOf[uint32, *page](),
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see memory.IMemory)
// --------------------------------------------------------------------------

func (m *pagedMemory) Read(address uint32, width int) (uint64, error) {
	if err := m.check(address, width); err != nil {
		return 0, err
	}

	var buf [8]byte
	m.copyOut(address, buf[:width])
	return wire.Uint(buf[:], 0, width), nil
}

func (m *pagedMemory) Write(address uint32, width int, value uint64) error {
	if err := m.check(address, width); err != nil {
		return err
	}

	var buf [8]byte
	wire.PutUint(buf[:], 0, width, value)
	m.copyIn(address, buf[:width])
	return nil
}

func (m *pagedMemory) Size() uint64 {
	return m.size
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// check validates width and bounds of an access
func (m *pagedMemory) check(address uint32, width int) error {
	switch width {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("invalid width %d", width)
	}
	if uint64(address)+uint64(width) > m.size {
		return fmt.Errorf("%w: 0x%08x+%d (size 0x%x)", ErrOutOfRange, address, width, m.size)
	}
	return nil
}

// copyOut copies memory starting at address into dst, an access may span two pages
func (m *pagedMemory) copyOut(address uint32, dst []byte) {
	for len(dst) > 0 {
		off := int(address & pageMask)
		n := min(len(dst), PageSize-off)

		if p, ok := m.pages.Load(address >> pageBits); ok {
			p.mu.RLock()
			copy(dst[:n], p.data[off:off+n])
			p.mu.RUnlock()
		} else {
			clear(dst[:n])
		}

		dst = dst[n:]
		address += uint32(n)
	}
}

// copyIn copies src into memory starting at address, allocating pages as needed
func (m *pagedMemory) copyIn(address uint32, src []byte) {
	for len(src) > 0 {
		off := int(address & pageMask)
		n := min(len(src), PageSize-off)

		p, loaded := m.pages.LoadOrCompute(address>>pageBits, func() *page {
			return &page{}
		})
		if !loaded {
			Logger.Debugf("Allocated page 0x%05x", address>>pageBits)
		}

		p.mu.Lock()
		copy(p.data[off:off+n], src[:n])
		p.mu.Unlock()

		src = src[n:]
		address += uint32(n)
	}
}
