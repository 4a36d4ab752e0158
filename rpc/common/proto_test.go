package common

import "testing"

func TestOpcodeWidth(t *testing.T) {
	tests := []struct {
		op      Opcode
		width   int
		isRead  bool
		isWrite bool
	}{
		{OpRead8, 1, true, false},
		{OpRead16, 2, true, false},
		{OpRead32, 4, true, false},
		{OpRead64, 8, true, false},
		{OpWrite8, 1, false, true},
		{OpWrite16, 2, false, true},
		{OpWrite32, 4, false, true},
		{OpWrite64, 8, false, true},
		{OpMultiCommand, 0, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			if got := tt.op.Width(); got != tt.width {
				t.Errorf("Width() = %d, want %d", got, tt.width)
			}
			if got := tt.op.IsRead(); got != tt.isRead {
				t.Errorf("IsRead() = %t, want %t", got, tt.isRead)
			}
			if got := tt.op.IsWrite(); got != tt.isWrite {
				t.Errorf("IsWrite() = %t, want %t", got, tt.isWrite)
			}
		})
	}
}

func TestOpcodeJSON(t *testing.T) {
	for _, op := range []Opcode{OpRead8, OpWrite64, OpMultiCommand} {
		data, err := op.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%v) error: %v", op, err)
		}
		var got Opcode
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatalf("UnmarshalJSON(%s) error: %v", data, err)
		}
		if got != op {
			t.Errorf("round trip = %v, want %v", got, op)
		}
	}

	var o Opcode
	if err := o.UnmarshalJSON([]byte(`"read128"`)); err == nil {
		t.Error("expected error for unknown opcode name")
	}
}
