package server

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/ValentinKolb/pine/lib/memory"
	"github.com/ValentinKolb/pine/rpc/common"
	"github.com/ValentinKolb/pine/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"
)

var Logger = logger.GetLogger("server")

// NewRPCServer creates a new reference server
// It takes a config, a transport and the memory the commands are executed on
//
// Usage:
//
//	s := server.NewRPCServer(
//		*config,
//		unix.NewUnixDefaultServerTransport(),
//		memory.NewPagedMemory(config.MemorySize),
//	)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRPCServer(
	config common.ServerConfig,
	transport transport.IRPCServerTransport,
	mem memory.IMemory,
) *rpcServer {
	// https://github.com/golang/go/issues/17393
	if runtime.GOOS == "darwin" {
		signal.Ignore(syscall.Signal(0xd))
	}

	Logger.Infof("Created RPC Server")
	Logger.Infof(config.String())

	return &rpcServer{
		config:    config,
		transport: transport,
		memory:    mem,
		adapter:   NewMemoryServerAdapter(),
	}
}

type rpcServer struct {
	config    common.ServerConfig
	transport transport.IRPCServerTransport
	memory    memory.IMemory
	adapter   IRPCServerAdapter

	mu        sync.Mutex // one request executes at a time, batches are atomic
	listening bool
}

func (s *rpcServer) registerTransportHandler() {
	s.transport.RegisterHandler(func(r *bufio.Reader) ([]byte, error) {
		cmds, err := readRequest(r, nil)

		switch {
		case err == nil:
		case errors.Is(err, errUnknownOpcode):
			// the stream can not be parsed any further, the transport
			// closes the connection after the fail reply
			Logger.Warningf("Rejecting request: %v", err)
			requestsFail.Inc()
			return failReply(), nil
		default:
			return nil, err
		}

		start := time.Now()

		s.mu.Lock()
		resp := s.adapter.Handle(cmds, s.memory)
		s.mu.Unlock()

		requestSeconds.UpdateDuration(start)
		batchSize.Update(float64(len(cmds)))
		if common.Status(resp[0]) == common.StatusOk {
			requestsOk.Inc()
		} else {
			requestsFail.Inc()
		}
		return resp, nil
	})
}

// Listen registers the request handler and binds the endpoint without blocking
func (s *rpcServer) Listen() error {
	if s.listening {
		return nil
	}

	s.registerTransportHandler()
	if err := s.transport.Listen(s.config); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Endpoint, err)
	}
	s.listening = true
	return nil
}

// Serve starts the RPC server and blocks until Close is called
func (s *rpcServer) Serve() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.transport.Serve()
}

// Endpoint returns the address the server is listening on
func (s *rpcServer) Endpoint() string {
	if addr := s.transport.Addr(); addr != nil {
		return addr.String()
	}
	return s.config.Endpoint
}

// Close stops the server and closes all open connections
func (s *rpcServer) Close() error {
	return s.transport.Close()
}
