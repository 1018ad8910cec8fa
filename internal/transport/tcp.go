// internal/transport/tcp.go
package transport

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tamzrod/modbus-delta/internal/codec"
)

// Config is minimal transport config.
type Config struct {
	Host    string
	Port    int
	Timeout time.Duration

	// TraceFrames routes the library's raw frame dump into Logger at debug level.
	TraceFrames bool
	Logger      *zap.Logger
}

// Endpoint returns host:port.
func (c Config) Endpoint() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// TCPSession is a single Modbus TCP connection to the controller.
// It serializes requests on its own as well, so it is safe outside the driver.
type TCPSession struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

// Dial connects eagerly so the Timeout bounds the connect wait.
func Dial(cfg Config) (*TCPSession, error) {
	if cfg.Host == "" {
		return nil, errors.New("transport: host required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("transport: port %d out of range", cfg.Port)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint())
	h.Timeout = cfg.Timeout
	h.SlaveId = UnitID
	if cfg.TraceFrames && cfg.Logger != nil {
		std, err := zap.NewStdLogAt(cfg.Logger.With(zap.String("component", "modbus")), zapcore.DebugLevel)
		if err == nil {
			h.Logger = std
		}
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("transport: connect %s: %w", cfg.Endpoint(), err)
	}

	return &TCPSession{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// NewFactory binds cfg into a Factory for the supervisor.
func NewFactory(cfg Config) Factory {
	return func() (Session, error) {
		s, err := Dial(cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Close closes the TCP connection.
func (s *TCPSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler.Close()
}

func (s *TCPSession) ReadCoil(addr uint16) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.client.ReadCoils(addr, 1)
	if err != nil {
		return false, err
	}
	if len(res) < 1 {
		return false, fmt.Errorf("%w: read coil %d", ErrShortResponse, addr)
	}
	return codec.CoilState(res), nil
}

func (s *TCPSession) ReadHoldingRegister(addr uint16) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.client.ReadHoldingRegisters(addr, 1)
	if err != nil {
		return 0, err
	}
	if len(res) < 2 {
		return 0, fmt.Errorf("%w: read register %d", ErrShortResponse, addr)
	}
	return codec.Word(res), nil
}

func (s *TCPSession) WriteCoil(addr uint16, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.client.WriteSingleCoil(addr, codec.Coil(on))
	return err
}

func (s *TCPSession) WriteHoldingRegisters(addr uint16, words []uint16) error {
	if len(words) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.client.WriteMultipleRegisters(addr, uint16(len(words)), codec.Bytes(words))
	return err
}
