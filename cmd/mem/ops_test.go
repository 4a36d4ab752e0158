package mem

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/pine/lib/memory"
	"github.com/ValentinKolb/pine/rpc/client"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/server"
	"github.com/ValentinKolb/pine/rpc/transport/unix"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		input   string
		want    Op
		wantErr bool
	}{
		{input: "r4@0x00347D34", want: Op{Width: 4, Address: 0x00347D34}},
		{input: "R1@16", want: Op{Width: 1, Address: 16}},
		{input: "w1@0x00347D34=7", want: Op{Write: true, Width: 1, Address: 0x00347D34, Value: 7}},
		{input: "w2@0x10=0xBEEF", want: Op{Write: true, Width: 2, Address: 0x10, Value: 0xBEEF}},
		{input: "w1@0x10=-1", want: Op{Write: true, Width: 1, Address: 0x10, Value: 0xFF}},
		{input: "w4@0x10=-2", want: Op{Write: true, Width: 4, Address: 0x10, Value: 0xFFFFFFFE}},
		{input: "w8@0x10=0xFFFFFFFFFFFFFFFF", want: Op{Write: true, Width: 8, Address: 0x10, Value: ^uint64(0)}},
		{input: "r3@0x10", want: Op{Width: 3, Address: 0x10}}, // rejected by the client
		{input: "w1@0x10=256", wantErr: true},
		{input: "w1@0x10=-129", wantErr: true},
		{input: "r4@0x100000000", wantErr: true},
		{input: "r4", wantErr: true},
		{input: "r4@0x10=1", wantErr: true},
		{input: "w4@0x10", wantErr: true},
		{input: "x4@0x10", wantErr: true},
		{input: "rX@0x10", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOp(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseOp(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResultString(t *testing.T) {
	r := Result{Op: Op{Width: 2, Address: 0x00347D34}, Value: 0x1234}
	if got, want := r.String(), "r2@0x00347d34 = 4660 (0x1234)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// --------------------------------------------------------------------------
// Execution against the reference server
// --------------------------------------------------------------------------

func newTestClient(t *testing.T) *client.Client {
	t.Helper()

	dir, err := os.MkdirTemp("/tmp", "pine-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })

	config := common.ServerConfig{
		Endpoint:   filepath.Join(dir, "pine.sock"),
		MemorySize: 1 << 16,
	}
	s := server.NewRPCServer(config, unix.NewUnixDefaultServerTransport(), memory.NewPagedMemory(config.MemorySize))
	if err := s.Listen(); err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	go func() { _ = s.Serve() }()
	t.Cleanup(func() { _ = s.Close() })

	c, err := client.NewRPCClient(common.ClientConfig{
		TimeoutSecond: 5,
		Transport:     common.ClientTransportConfig{Endpoint: config.Endpoint},
	}, unix.NewUnixClientTransport())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return c
}

func TestRunOps(t *testing.T) {
	c := newTestClient(t)

	// single write is an immediate command
	if _, err := RunOps(c, []Op{{Write: true, Width: 4, Address: 0x100, Value: 42}}); err != nil {
		t.Fatalf("RunOps(write) failed: %v", err)
	}

	// single read
	results, err := RunOps(c, []Op{{Width: 4, Address: 0x100}})
	if err != nil || len(results) != 1 || results[0].Value != 42 {
		t.Fatalf("RunOps(read) = %+v, %v", results, err)
	}

	// batch
	ops, err := ParseOps([]string{"w1@0x200=1", "r1@0x200", "w2@0x200=0x1234", "r2@0x200", "r4@0x100"})
	if err != nil {
		t.Fatalf("ParseOps failed: %v", err)
	}
	results, err = RunOps(c, ops)
	if err != nil {
		t.Fatalf("RunOps(batch) failed: %v", err)
	}
	want := []uint64{1, 0x1234, 42}
	if len(results) != len(want) {
		t.Fatalf("RunOps(batch) = %+v, want %d results", results, len(want))
	}
	for i, r := range results {
		if r.Value != want[i] {
			t.Errorf("result %d = %#x, want %#x", i, r.Value, want[i])
		}
	}

	// unsupported width in a batch discards the batch
	_, err = RunOps(c, []Op{{Width: 4, Address: 0}, {Width: 3, Address: 0}})
	if !errors.Is(err, common.ErrUnsupportedWidth) {
		t.Fatalf("RunOps(width 3) error = %v, want ErrUnsupportedWidth", err)
	}
	if b, err := c.TryBegin(); err != nil {
		t.Fatalf("batch was not discarded: %v", err)
	} else {
		b.Discard()
	}

	// out of range
	if _, err := RunOps(c, []Op{{Width: 4, Address: 1 << 16}}); !errors.Is(err, common.ErrCommandFailed) {
		t.Errorf("RunOps(out of range) error = %v, want ErrCommandFailed", err)
	}
}

func TestRunShell(t *testing.T) {
	c := newTestClient(t)

	input := strings.Join([]string{
		"",
		"help",
		"w4@0x10=0xCAFE",
		"r4@0x10",
		"w1@0x20=5 r1@0x20 r2@0x10",
		"bogus",
		"r4@0x10000",
		"exit",
		"r4@0x10",
	}, "\n")

	var out bytes.Buffer
	if err := runShell(newScannerEditor(strings.NewReader(input), nil), &out, c); err != nil {
		t.Fatalf("runShell failed: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		"r<width>@<address>",
		"ok",
		"r4@0x00000010 = 51966 (0x0000cafe)",
		"r1@0x00000020 = 5 (0x05)",
		"r2@0x00000010 = 51966 (0xcafe)",
		"error: invalid op \"bogus\"",
		"command failed",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}

	// nothing after exit is executed
	if n := strings.Count(text, "r4@0x00000010 ="); n != 1 {
		t.Errorf("read after exit executed, found %d results", n)
	}
}

func TestRunShellEOF(t *testing.T) {
	c := newTestClient(t)

	var out bytes.Buffer
	if err := runShell(newScannerEditor(strings.NewReader("w1@0x0=1"), nil), &out, c); err != nil {
		t.Fatalf("runShell failed: %v", err)
	}
	if !strings.Contains(out.String(), "ok") {
		t.Errorf("output = %q, want ok", out.String())
	}
}

func TestCheckPerfRange(t *testing.T) {
	tests := []struct {
		base    uint32
		spread  int
		wantErr bool
	}{
		{0x00100000, 100, false},
		{0xFFFFFFF8, 1, false},
		{0xFFFFFFF8, 2, true},
		{0xFFFFFF00, 32, false},
		{0xFFFFFF00, 33, true},
	}

	for _, tt := range tests {
		err := checkPerfRange(tt.base, tt.spread)
		if (err != nil) != tt.wantErr {
			t.Errorf("checkPerfRange(0x%08x, %d) error = %v, wantErr %v", tt.base, tt.spread, err, tt.wantErr)
		}
	}
}
