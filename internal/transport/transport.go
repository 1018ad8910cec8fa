// internal/transport/transport.go
package transport

import (
	"errors"
	"time"
)

// UnitID is the fixed Modbus unit (slave) id of the controller.
const UnitID uint8 = 1

// DefaultTimeout bounds both the connect wait and each request.
const DefaultTimeout = time.Second

var ErrShortResponse = errors.New("transport: short response")

// Session is one live connection to the controller.
// One register per call: no batching, no caching.
type Session interface {
	ReadCoil(addr uint16) (bool, error)                      // FC 1
	ReadHoldingRegister(addr uint16) (uint16, error)         // FC 3
	WriteCoil(addr uint16, on bool) error                    // FC 5
	WriteHoldingRegisters(addr uint16, words []uint16) error // FC 16
	Close() error
}

// Factory opens a new Session. ONE attempt per call.
type Factory func() (Session, error)
