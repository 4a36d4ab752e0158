package mem

import (
	"fmt"
	"github.com/ValentinKolb/pine/rpc/client"
	"strconv"
	"strings"
)

// Op is one parsed read or write of the command line syntax
//
//	r<width>@<address>           e.g. r4@0x00347D34
//	w<width>@<address>=<value>   e.g. w1@0x00347D34=7
//
// width is given in bytes, address and value accept Go integer literals
// (decimal, 0x hex, 0o octal, 0b binary). Negative values are stored in
// two's complement.
type Op struct {
	Write   bool
	Width   int
	Address uint32
	Value   uint64
}

// String returns the op in command line syntax
func (o Op) String() string {
	if o.Write {
		return fmt.Sprintf("w%d@0x%08x=%d", o.Width, o.Address, o.Value)
	}
	return fmt.Sprintf("r%d@0x%08x", o.Width, o.Address)
}

// Result is the outcome of a read op
type Result struct {
	Op    Op
	Value uint64
}

// String formats a result as decimal and zero padded hex value
func (r Result) String() string {
	return fmt.Sprintf("%s = %d (0x%0*x)", r.Op, r.Value, r.Op.Width*2, r.Value)
}

// --------------------------------------------------------------------------
// Parsing
// --------------------------------------------------------------------------

// ParseOp parses a single op
func ParseOp(s string) (Op, error) {
	var op Op

	if len(s) < 2 {
		return op, fmt.Errorf("invalid op %q", s)
	}
	switch s[0] {
	case 'r', 'R':
	case 'w', 'W':
		op.Write = true
	default:
		return op, fmt.Errorf("invalid op %q: must start with r or w", s)
	}

	width, rest, ok := strings.Cut(s[1:], "@")
	if !ok {
		return op, fmt.Errorf("invalid op %q: missing @<address>", s)
	}
	w, err := strconv.Atoi(width)
	if err != nil {
		return op, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	op.Width = w

	addr, value, hasValue := strings.Cut(rest, "=")
	if hasValue != op.Write {
		if op.Write {
			return op, fmt.Errorf("invalid op %q: write needs =<value>", s)
		}
		return op, fmt.Errorf("invalid op %q: read takes no value", s)
	}

	if op.Address, err = ParseAddress(addr); err != nil {
		return op, err
	}
	if op.Write {
		if op.Value, err = ParseValue(value, op.Width); err != nil {
			return op, err
		}
	}
	return op, nil
}

// ParseOps parses a list of ops
func ParseOps(args []string) ([]Op, error) {
	ops := make([]Op, 0, len(args))
	for _, arg := range args {
		op, err := ParseOp(arg)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// ParseAddress parses a 32 bit address
func ParseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint32(v), nil
}

// ParseValue parses a value and checks that it fits into width bytes.
// Negative values are converted to their two's complement of width bytes.
func ParseValue(s string, width int) (uint64, error) {
	if width < 1 || width > 8 {
		// the client rejects the width, the value is passed through unchecked
		return strconv.ParseUint(s, 0, 64)
	}
	bits := width * 8

	if strings.HasPrefix(s, "-") {
		v, err := strconv.ParseInt(s, 0, bits)
		if err != nil {
			return 0, fmt.Errorf("invalid value %q for %d bytes: %w", s, width, err)
		}
		return uint64(v) & mask(width), nil
	}

	v, err := strconv.ParseUint(s, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid value %q for %d bytes: %w", s, width, err)
	}
	return v, nil
}

// mask returns a mask of the low width bytes
func mask(width int) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}
	return 1<<(uint(width)*8) - 1
}

// --------------------------------------------------------------------------
// Execution
// --------------------------------------------------------------------------

// RunOps executes ops and returns the results of all reads in order.
// A single op is sent as immediate command, several ops as one batch.
func RunOps(c *client.Client, ops []Op) ([]Result, error) {
	switch len(ops) {
	case 0:
		return nil, nil
	case 1:
		op := ops[0]
		if op.Write {
			return nil, c.WriteWidth(op.Address, op.Width, op.Value)
		}
		v, err := c.ReadWidth(op.Address, op.Width)
		if err != nil {
			return nil, err
		}
		return []Result{{Op: op, Value: v}}, nil
	}

	b := c.Begin()
	defer b.Discard()

	reads := make([]Op, 0, len(ops))
	for _, op := range ops {
		var err error
		if op.Write {
			err = b.WriteWidth(op.Address, op.Width, op.Value)
		} else {
			err = b.ReadWidth(op.Address, op.Width)
			reads = append(reads, op)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	plan, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	if _, err := c.Execute(plan); err != nil {
		return nil, err
	}

	results := make([]Result, len(reads))
	for i, op := range reads {
		results[i] = Result{Op: op, Value: plan.Uint(i, op.Width)}
	}
	return results, nil
}
