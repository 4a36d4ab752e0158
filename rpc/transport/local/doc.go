// Package local selects the transport and endpoint the emulator uses on the
// current platform: the Unix domain socket /tmp/pcsx2.sock, or loopback TCP
// port 28011 on Windows. The endpoint is a build time constant, it is not
// negotiated.
package local
