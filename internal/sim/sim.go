// Package sim models a DS1337 on an I2C bus, for tests and for running the
// tools without hardware. It implements the Tx shape of drivers.I2C.
package sim

import "errors"

const (
	DefaultAddress = 0x68
	numRegs        = 0x10
	regControl     = 0x0E
	regStatus      = 0x0F
)

// ErrNACK is returned for transactions nobody acknowledged.
var ErrNACK = errors.New("sim: address not acknowledged")

// DS1337 is a register-level model of the chip. The register pointer
// auto-increments and wraps from 0x0F to 0x00 like the real part. Time does
// not advance on its own.
type DS1337 struct {
	Addr uint16
	Regs [numRegs]byte
	// Absent makes every transaction fail with ErrNACK.
	Absent bool

	// Reads and Writes count transactions that returned data or stored data.
	Reads  int
	Writes int

	ptr      uint8
	failNext error
}

// New returns a chip in its first power-up state: oscillator enabled and the
// oscillator stop flag set.
func New() *DS1337 {
	s := &DS1337{Addr: DefaultAddress}
	s.Regs[regStatus] = 0x80
	return s
}

// FailNext makes the next transaction fail with err without touching the
// registers.
func (s *DS1337) FailNext(err error) {
	s.failNext = err
}

func (s *DS1337) Tx(addr uint16, w, r []byte) error {
	if s.Absent || addr != s.Addr {
		return ErrNACK
	}
	if err := s.failNext; err != nil {
		s.failNext = nil
		return err
	}
	if len(w) > 0 {
		s.ptr = w[0] % numRegs
		for _, b := range w[1:] {
			s.Regs[s.ptr] = b
			s.ptr = (s.ptr + 1) % numRegs
		}
		if len(w) > 1 {
			s.Writes++
		}
	}
	for i := range r {
		r[i] = s.Regs[s.ptr]
		s.ptr = (s.ptr + 1) % numRegs
	}
	if len(r) > 0 {
		s.Reads++
	}
	return nil
}
