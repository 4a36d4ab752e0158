package unix

import (
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ValentinKolb/pine/rpc/common"
)

func TestListenReplacesStaleSocket(t *testing.T) {
	dir, err := os.MkdirTemp("/tmp", "pine-unix-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, "pine.sock")

	// leave a socket file behind without unlinking it
	stale, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("Failed to create stale socket: %v", err)
	}
	stale.(*net.UnixListener).SetUnlinkOnClose(false)
	_ = stale.Close()

	c := &serverConnector{}
	l, err := c.Listen(common.ServerConfig{Endpoint: path})
	if err != nil {
		t.Fatalf("Listen over stale socket failed: %v", err)
	}
	_ = l.Close()
}

func TestListenRefusesRegularFile(t *testing.T) {
	dir, err := os.MkdirTemp("/tmp", "pine-unix-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	path := filepath.Join(dir, "pine.sock")

	if err := os.WriteFile(path, []byte("keep"), 0o600); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	c := &serverConnector{}
	if l, err := c.Listen(common.ServerConfig{Endpoint: path}); err == nil {
		_ = l.Close()
		t.Fatal("Listen replaced a regular file")
	}
	if data, err := os.ReadFile(path); err != nil || string(data) != "keep" {
		t.Errorf("file changed: %q, %v", data, err)
	}
}

func TestListenRejectsLongPath(t *testing.T) {
	c := &serverConnector{}
	path := "/tmp/" + strings.Repeat("p", maxSocketPath)
	if _, err := c.Listen(common.ServerConfig{Endpoint: path}); err == nil {
		t.Fatal("Listen accepted a path longer than sun_path")
	}
}
