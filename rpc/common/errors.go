package common

import "errors"

// --------------------------------------------------------------------------
// Error Definitions
// --------------------------------------------------------------------------

var (
	// ErrUnsupportedWidth is returned when a value width other than 1, 2, 4 or 8
	// bytes is used. It is detected before any buffer is touched.
	ErrUnsupportedWidth = errors.New("unsupported value width")

	// ErrAlreadyBuilding is returned by TryBegin if another batch is being built
	ErrAlreadyBuilding = errors.New("batch already building")

	// ErrNotBuilding is returned when a finalized or discarded batch is used again
	ErrNotBuilding = errors.New("batch not building")

	// ErrBatchFull is returned when a batch would exceed the 16 bit argument count
	ErrBatchFull = errors.New("batch full")

	// ErrConnectionFailed wraps every transport level fault (dial, write, read)
	ErrConnectionFailed = errors.New("connection failed")

	// ErrCommandFailed is returned when the remote side replied with StatusFail
	ErrCommandFailed = errors.New("command failed")
)
