package base

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/ValentinKolb/pine/rpc/common"
	"io"
	"net"
	"testing"
	"time"
)

// pipeConnector hands out one end of a net.Pipe per Connect and runs serve on the other end
type pipeConnector struct {
	serve   func(conn net.Conn)
	dialErr error
}

func (p *pipeConnector) GetName() string { return "pipe" }

func (p *pipeConnector) Connect(_ string, _ time.Duration) (net.Conn, error) {
	if p.dialErr != nil {
		return nil, p.dialErr
	}
	client, server := net.Pipe()
	go func() {
		defer server.Close()
		p.serve(server)
	}()
	return client, nil
}

func (p *pipeConnector) UpgradeConnection(net.Conn, common.ClientConfig) error { return nil }

// replyWith returns a serve function that reads reqSize bytes and answers with reply
func replyWith(reqSize int, reply []byte, got chan<- []byte) func(conn net.Conn) {
	return func(conn net.Conn) {
		req := make([]byte, reqSize)
		if _, err := io.ReadFull(conn, req); err != nil {
			return
		}
		if got != nil {
			got <- req
		}
		conn.Write(reply)
	}
}

func newTestTransport(t *testing.T, connector IClientConnector) *clientTransport {
	t.Helper()
	tr := NewBaseClientTransport(connector).(*clientTransport)
	if err := tr.Connect(common.ClientConfig{
		TimeoutSecond: 2,
		Transport:     common.ClientTransportConfig{Endpoint: "pipe"},
	}); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	return tr
}

func TestSendRoundTrip(t *testing.T) {
	got := make(chan []byte, 1)
	req := []byte{0x02, 0x34, 0x7D, 0x34, 0x00}
	tr := newTestTransport(t, &pipeConnector{serve: replyWith(len(req), []byte{0x00, 0x2A, 0x00, 0x00, 0x00}, got)})

	reply := make([]byte, 5)
	if err := tr.Send(req, reply); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if r := <-got; !bytes.Equal(r, req) {
		t.Errorf("server received % X, want % X", r, req)
	}
	if want := []byte{0x00, 0x2A, 0x00, 0x00, 0x00}; !bytes.Equal(reply, want) {
		t.Errorf("reply = % X, want % X", reply, want)
	}
}

func TestSendStatusFail(t *testing.T) {
	// the server only sends the status byte, Send must not wait for more
	tr := newTestTransport(t, &pipeConnector{serve: replyWith(5, []byte{0xFF}, nil)})

	err := tr.Send([]byte{0x02, 0, 0, 0, 0}, make([]byte, 5))
	if !errors.Is(err, common.ErrCommandFailed) {
		t.Fatalf("Send error = %v, want ErrCommandFailed", err)
	}
	if errors.Is(err, common.ErrConnectionFailed) {
		t.Errorf("status fail must not be reported as connection failure: %v", err)
	}
}

func TestSendConnectionFailures(t *testing.T) {
	tests := []struct {
		name      string
		connector *pipeConnector
	}{
		{
			name:      "dial error",
			connector: &pipeConnector{dialErr: fmt.Errorf("connection refused")},
		},
		{
			name: "short reply",
			connector: &pipeConnector{serve: func(conn net.Conn) {
				io.ReadFull(conn, make([]byte, 5))
				conn.Write([]byte{0x00, 0x01})
			}},
		},
		{
			name: "closed before write",
			connector: &pipeConnector{serve: func(conn net.Conn) {
				conn.Close()
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTransport(t, tt.connector)
			err := tr.Send([]byte{0x02, 0, 0, 0, 0}, make([]byte, 5))
			if !errors.Is(err, common.ErrConnectionFailed) {
				t.Errorf("Send error = %v, want ErrConnectionFailed", err)
			}
		})
	}
}

func TestSendWithoutConnect(t *testing.T) {
	tr := NewBaseClientTransport(&pipeConnector{})
	if err := tr.Send([]byte{0}, make([]byte, 1)); !errors.Is(err, common.ErrConnectionFailed) {
		t.Errorf("Send before Connect error = %v, want ErrConnectionFailed", err)
	}

	if err := tr.Connect(common.ClientConfig{}); err == nil {
		t.Error("Connect without endpoint should fail")
	}

	tr = newTestTransport(t, &pipeConnector{serve: replyWith(1, []byte{0}, nil)})
	tr.Close()
	if err := tr.Send([]byte{0}, make([]byte, 1)); !errors.Is(err, common.ErrConnectionFailed) {
		t.Errorf("Send after Close error = %v, want ErrConnectionFailed", err)
	}
}

func TestReadReply(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		size    int
		wantErr error
	}{
		{"ok status only", []byte{0x00}, 1, nil},
		{"ok with payload", []byte{0x00, 0x34, 0x12}, 3, nil},
		{"fail short", []byte{0xFF}, 3, errStatusFail},
		{"truncated", []byte{0x00, 0x34}, 3, io.ErrUnexpectedEOF},
		{"empty", []byte{}, 3, io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := make([]byte, tt.size)
			err := readReply(bytes.NewReader(tt.input), reply)
			if !errors.Is(err, tt.wantErr) && err != tt.wantErr {
				t.Errorf("readReply error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
