package base

import (
	"errors"
	"github.com/ValentinKolb/pine/rpc/common"
	"io"
	"net"
)

// errStatusFail signals that the peer answered with common.StatusFail
var errStatusFail = errors.New("status fail")

// writeMessage writes the complete message to the connection.
// A short write is reported as io.ErrShortWrite.
func writeMessage(conn net.Conn, data []byte) error {
	n, err := conn.Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}

// readReply reads exactly len(reply) bytes into reply.
// The status byte is read first, if it is common.StatusFail the rest of the
// reply is not awaited (the server may only send the status) and
// errStatusFail is returned.
func readReply(r io.Reader, reply []byte) error {
	if len(reply) == 0 {
		return nil
	}

	// Read status
	if _, err := io.ReadFull(r, reply[:1]); err != nil {
		return err
	}

	if common.Status(reply[0]) == common.StatusFail {
		return errStatusFail
	}

	// Read payload
	_, err := io.ReadFull(r, reply[1:])
	return err
}

// ApplySocketConf sets the socket buffer sizes on connections that support it
func ApplySocketConf(conn net.Conn, conf common.SocketConf) error {
	type bufferedConn interface {
		SetWriteBuffer(bytes int) error
		SetReadBuffer(bytes int) error
	}

	c, ok := conn.(bufferedConn)
	if !ok {
		return nil
	}

	// Set socket write buffer size if configured
	if conf.WriteBufferSize > 0 {
		if err := c.SetWriteBuffer(conf.WriteBufferSize); err != nil {
			return err
		}
	}

	// Set socket read buffer size if configured
	if conf.ReadBufferSize > 0 {
		if err := c.SetReadBuffer(conf.ReadBufferSize); err != nil {
			return err
		}
	}
	return nil
}
