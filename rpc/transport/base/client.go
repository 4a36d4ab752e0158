package base

import (
	"errors"
	"fmt"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"net"
	"sync"
	"time"
)

var Logger = logger.GetLogger("transport/rpc")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint, a zero timeout blocks
	Connect(endpoint string, timeout time.Duration) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector IClientConnector
	mu        sync.RWMutex // Protects config and connected
	config    common.ClientConfig
	connected bool
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IRPCClientTransport {
	return &clientTransport{
		connector: connector,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IRPCClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if config.Transport.Endpoint == "" {
		return fmt.Errorf("no endpoint provided")
	}

	t.mu.Lock()
	t.config = config
	t.connected = true
	t.mu.Unlock()

	Logger.Infof("Using %s transport to %s", t.connector.GetName(), config.Transport.Endpoint)
	return nil
}

func (t *clientTransport) Send(req []byte, reply []byte) error {
	t.mu.RLock()
	config, connected := t.config, t.connected
	t.mu.RUnlock()

	if !connected {
		return fmt.Errorf("%w: transport is not connected", common.ErrConnectionFailed)
	}

	endpoint := config.Transport.Endpoint
	timeout := time.Duration(config.TimeoutSecond) * time.Second

	// One connection per request
	conn, err := t.connector.Connect(endpoint, timeout)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %w", common.ErrConnectionFailed, endpoint, err)
	}
	defer conn.Close()

	if err := t.connector.UpgradeConnection(conn, config); err != nil {
		return fmt.Errorf("%w: upgrade connection to %s: %w", common.ErrConnectionFailed, endpoint, err)
	}

	// Set deadline for the whole round trip
	if timeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			return fmt.Errorf("%w: set deadline: %w", common.ErrConnectionFailed, err)
		}
	}

	start := time.Now()

	if err := writeMessage(conn, req); err != nil {
		return fmt.Errorf("%w: write %d bytes: %w", common.ErrConnectionFailed, len(req), err)
	}

	if err := readReply(conn, reply); err != nil {
		if errors.Is(err, errStatusFail) {
			Logger.Debugf("Command %s failed on %s", common.Opcode(req[0]), endpoint)
			return fmt.Errorf("%w: %s", common.ErrCommandFailed, common.Opcode(req[0]))
		}
		return fmt.Errorf("%w: read %d bytes: %w", common.ErrConnectionFailed, len(reply), err)
	}

	Logger.Debugf("Round trip to %s (%d bytes out, %d bytes in) took %s", endpoint, len(req), len(reply), time.Since(start))
	return nil
}

func (t *clientTransport) Close() error {
	t.mu.Lock()
	t.connected = false
	t.mu.Unlock()
	return nil
}
