// internal/address/address.go
package address

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Class is the one-letter register class tag of a controller address.
type Class byte

const (
	ClassM Class = 'M' // auxiliary relays (coils)
	ClassD Class = 'D' // data registers
	ClassT Class = 'T' // timer registers
)

// timerBank is where the T class starts in controller memory.
const timerBank = 0xE000

const maxPhysical = 0xFFFF

var (
	ErrInvalidAddressClass = errors.New("address: invalid register class")
	ErrInvalidOffset       = errors.New("address: invalid offset")
	ErrAddressRange        = errors.New("address: offset exceeds 16-bit register space")
)

// Address is a symbolic controller address such as M123 or D194.
// A value returned by Parse always translates to a valid physical index.
type Address struct {
	Class  Class
	Offset uint32
}

// Parse reads a symbolic address. The class tag is case-insensitive.
func Parse(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Address{}, fmt.Errorf("%w: empty address", ErrInvalidAddressClass)
	}

	c := Class(strings.ToUpper(s[:1])[0])
	base, ok := bankOffset(c)
	if !ok {
		return Address{}, fmt.Errorf("%w: %q", ErrInvalidAddressClass, s[:1])
	}

	digits := s[1:]
	if digits == "" {
		return Address{}, fmt.Errorf("%w: %q has no offset", ErrInvalidOffset, s)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Address{}, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
		}
	}

	off, err := strconv.ParseUint(digits, 10, 32)
	if err != nil || off+uint64(base) > maxPhysical {
		return Address{}, fmt.Errorf("%w: %q", ErrAddressRange, s)
	}

	return Address{Class: c, Offset: uint32(off)}, nil
}

// MustParse is Parse for package-level constants. It panics on error.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Translate maps a symbolic address straight to its physical register index.
func Translate(s string) (uint16, error) {
	a, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return a.Physical(), nil
}

// Physical returns the 16-bit register index the controller uses on the wire.
func (a Address) Physical() uint16 {
	base, _ := bankOffset(a.Class)
	return uint16(a.Offset + base)
}

func (a Address) String() string {
	return string(rune(a.Class)) + strconv.FormatUint(uint64(a.Offset), 10)
}

// IsZero reports whether a was never set.
func (a Address) IsZero() bool {
	return a.Class == 0
}

func bankOffset(c Class) (uint32, bool) {
	switch c {
	case ClassM, ClassD:
		return 0, true
	case ClassT:
		return timerBank, true
	default:
		return 0, false
	}
}
