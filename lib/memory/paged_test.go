package memory

import (
	"errors"
	"sync"
	"testing"
)

func TestReadWrite(t *testing.T) {
	tests := []struct {
		name    string
		address uint32
		width   int
		value   uint64
	}{
		{"byte", 0x00347D34, 1, 0x07},
		{"half", 0x00001000, 2, 0x1234},
		{"word", 0x00002000, 4, 0xDEADBEEF},
		{"double", 0x00003000, 8, 0x0102030405060708},
		{"cross page", PageSize - 3, 8, 0x1122334455667788},
		{"last byte", 0x01FFFFFF, 1, 0xAB},
	}

	mem := NewPagedMemory(32 << 20)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := mem.Write(tt.address, tt.width, tt.value); err != nil {
				t.Fatalf("Write failed: %v", err)
			}
			got, err := mem.Read(tt.address, tt.width)
			if err != nil {
				t.Fatalf("Read failed: %v", err)
			}
			if got != tt.value {
				t.Errorf("Read = %#x, want %#x", got, tt.value)
			}
		})
	}
}

func TestLittleEndianStorage(t *testing.T) {
	mem := NewPagedMemory(PageSize)

	if err := mem.Write(0x10, 4, 0x11223344); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	for i, want := range []uint64{0x44, 0x33, 0x22, 0x11} {
		got, err := mem.Read(0x10+uint32(i), 1)
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		if got != want {
			t.Errorf("byte %d = %#x, want %#x", i, got, want)
		}
	}

	// truncation to the width
	if err := mem.Write(0x20, 2, 0xFFFF1234); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if got, _ := mem.Read(0x20, 4); got != 0x1234 {
		t.Errorf("Read = %#x, want 0x1234", got)
	}
}

func TestUnwrittenMemoryIsZero(t *testing.T) {
	mem := NewPagedMemory(1 << 20)
	got, err := mem.Read(0x8000, 8)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != 0 {
		t.Errorf("Read = %#x, want 0", got)
	}
}

func TestOutOfRange(t *testing.T) {
	mem := NewPagedMemory(0x100)

	if _, err := mem.Read(0x100, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Read past end error = %v, want ErrOutOfRange", err)
	}
	if err := mem.Write(0xFE, 4, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Write across end error = %v, want ErrOutOfRange", err)
	}
	if _, err := mem.Read(0xFFFFFFFF, 8); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Read at max address error = %v, want ErrOutOfRange", err)
	}
	if _, err := mem.Read(0, 3); err == nil {
		t.Error("Read with width 3 should fail")
	}
	if mem.Size() != 0x100 {
		t.Errorf("Size() = %#x, want 0x100", mem.Size())
	}
}

func TestSizeClampedToAddressSpace(t *testing.T) {
	mem := NewPagedMemory(MaxSize * 2)

	if mem.Size() != MaxSize {
		t.Fatalf("Size() = %#x, want %#x", mem.Size(), MaxSize)
	}
	if err := mem.Write(0xFFFFFFFE, 4, 0xAABBCCDD); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Write across 4GiB error = %v, want ErrOutOfRange", err)
	}
	if got, err := mem.Read(0, 2); err != nil || got != 0 {
		t.Errorf("Read(0, 2) = %#x, %v, want 0 (no aliasing of the low pages)", got, err)
	}

	if err := mem.Write(0xFFFFFFFC, 4, 0x11223344); err != nil {
		t.Fatalf("Write of the last word failed: %v", err)
	}
	if got, _ := mem.Read(0xFFFFFFFC, 4); got != 0x11223344 {
		t.Errorf("Read of the last word = %#x, want 0x11223344", got)
	}
}

func TestConcurrentWrites(t *testing.T) {
	mem := NewPagedMemory(1 << 20)

	const workers = 8
	const perWorker = 512

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				addr := uint32((w*perWorker + i) * 4)
				if err := mem.Write(addr, 4, uint64(addr)); err != nil {
					t.Errorf("Write failed: %v", err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	for i := 0; i < workers*perWorker; i++ {
		addr := uint32(i * 4)
		if got, _ := mem.Read(addr, 4); got != uint64(addr) {
			t.Fatalf("Read(%#x) = %#x", addr, got)
		}
	}
}
