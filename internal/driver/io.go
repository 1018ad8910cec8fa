// internal/driver/io.go
package driver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/tamzrod/modbus-delta/internal/address"
	"github.com/tamzrod/modbus-delta/internal/codec"
	"github.com/tamzrod/modbus-delta/internal/transport"
)

// ---- strict reads ----

// Coil reads one coil. Errors wrap ErrTransport, ErrNotConnected or ErrClosed.
func (c *Client) Coil(a address.Address) (bool, error) {
	var on bool
	err := c.withSession(func(s transport.Session) error {
		v, err := s.ReadCoil(a.Physical())
		on = v
		return err
	})
	return on, err
}

// Register reads one holding register and decodes it as a signed value.
func (c *Client) Register(a address.Address) (int, error) {
	var word uint16
	err := c.withSession(func(s transport.Session) error {
		w, err := s.ReadHoldingRegister(a.Physical())
		word = w
		return err
	})
	if err != nil {
		return 0, err
	}
	return codec.DecodeSigned(word), nil
}

// ---- lossy reads ----

// ReadBoolean reads a coil; ok is false when the value is absent for any reason.
func (c *Client) ReadBoolean(a address.Address) (value bool, ok bool) {
	v, err := c.Coil(a)
	if err != nil {
		c.logger.Debug("read coil failed", zap.Stringer("address", a), zap.Error(err))
		return false, false
	}
	return v, true
}

// ReadSignedValue reads a holding register; ok is false when the value is absent.
func (c *Client) ReadSignedValue(a address.Address) (value int, ok bool) {
	v, err := c.Register(a)
	if err != nil {
		c.logger.Debug("read register failed", zap.Stringer("address", a), zap.Error(err))
		return 0, false
	}
	return v, true
}

// ---- writes ----
// Failures are logged at error level and returned. No retries.

func (c *Client) WriteBoolean(a address.Address, value bool) error {
	err := c.withSession(func(s transport.Session) error {
		return s.WriteCoil(a.Physical(), value)
	})
	if err != nil {
		c.logger.Error("write coil failed",
			zap.Stringer("address", a),
			zap.Bool("value", value),
			zap.Error(err),
		)
	}
	return err
}

func (c *Client) WriteSignedValue(a address.Address, value int) error {
	if !codec.InRange(value) {
		err := fmt.Errorf("%w: %d", ErrValueRange, value)
		c.logger.Error("write register refused",
			zap.Stringer("address", a),
			zap.Int("value", value),
			zap.Error(err),
		)
		return err
	}

	word := codec.EncodeSigned(value)
	err := c.withSession(func(s transport.Session) error {
		return s.WriteHoldingRegisters(a.Physical(), []uint16{word})
	})
	if err != nil {
		c.logger.Error("write register failed",
			zap.Stringer("address", a),
			zap.Int("value", value),
			zap.Error(err),
		)
	}
	return err
}
