package server

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ValentinKolb/pine/rpc/common"
)

func TestReadRequest(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		want    []Command
		wantErr error
	}{
		{
			name:  "read32",
			input: []byte{0x02, 0x34, 0x7D, 0x34, 0x00},
			want:  []Command{{Op: common.OpRead32, Address: 0x00347D34}},
		},
		{
			name:  "write8",
			input: []byte{0x04, 0x34, 0x7D, 0x34, 0x00, 0x07},
			want:  []Command{{Op: common.OpWrite8, Address: 0x00347D34, Value: 7}},
		},
		{
			name:  "write64",
			input: []byte{0x07, 0x10, 0x00, 0x00, 0x00, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01},
			want:  []Command{{Op: common.OpWrite64, Address: 0x10, Value: 0x0102030405060708}},
		},
		{
			name: "batch",
			input: []byte{
				0xFF, 0x02, 0x00,
				0x04, 0x34, 0x7D, 0x34, 0x00, 0x01,
				0x01, 0x34, 0x7D, 0x34, 0x00,
			},
			want: []Command{
				{Op: common.OpWrite8, Address: 0x00347D34, Value: 1},
				{Op: common.OpRead16, Address: 0x00347D34},
			},
		},
		{
			name:  "empty batch",
			input: []byte{0xFF, 0x00, 0x00},
			want:  nil,
		},
		{
			name:    "empty stream",
			input:   nil,
			wantErr: io.EOF,
		},
		{
			name:    "truncated header",
			input:   []byte{0x02, 0x34, 0x7D},
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "truncated value",
			input:   []byte{0x06, 0x00, 0x00, 0x00, 0x00, 0x01},
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "truncated batch",
			input:   []byte{0xFF, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			wantErr: io.ErrUnexpectedEOF,
		},
		{
			name:    "unknown opcode",
			input:   []byte{0x42, 0x00, 0x00, 0x00, 0x00},
			wantErr: errUnknownOpcode,
		},
		{
			name:    "nested batch",
			input:   []byte{0xFF, 0x01, 0x00, 0xFF, 0x01, 0x00},
			wantErr: errUnknownOpcode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readRequest(bufio.NewReader(bytes.NewReader(tt.input)), nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("readRequest() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("readRequest() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("readRequest() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("command %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadRequestStream(t *testing.T) {
	// two requests back to back on the same stream
	input := []byte{
		0x00, 0x01, 0x00, 0x00, 0x00,
		0x05, 0x02, 0x00, 0x00, 0x00, 0xAA, 0xBB,
	}
	r := bufio.NewReader(bytes.NewReader(input))

	first, err := readRequest(r, nil)
	if err != nil || len(first) != 1 || first[0].Op != common.OpRead8 {
		t.Fatalf("first request = %+v, %v", first, err)
	}
	second, err := readRequest(r, nil)
	if err != nil || len(second) != 1 || second[0].Value != 0xBBAA {
		t.Fatalf("second request = %+v, %v", second, err)
	}
	if _, err := readRequest(r, nil); err != io.EOF {
		t.Errorf("third request error = %v, want io.EOF", err)
	}
}
