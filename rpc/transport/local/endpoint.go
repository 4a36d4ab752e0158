package local

const (
	// UnixEndpoint is the socket path the emulator listens on
	UnixEndpoint = "/tmp/pcsx2.sock"
	// TCPEndpoint is the loopback address the emulator listens on where
	// unix sockets are unavailable
	TCPEndpoint = "127.0.0.1:28011"
)
