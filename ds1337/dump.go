package ds1337

import (
	"fmt"
	"io"
)

// DumpRegisters writes every register of the chip, one per line, as the
// device address, the register index in hex and its value in binary. It only
// reads; the cached registers are left alone.
func (d *Device) DumpRegisters(w io.Writer) error {
	var r [NumRegs]byte
	reg := [1]byte{Time}
	if err := d.bus.Tx(d.Address, reg[:], r[:]); err != nil {
		return &BusError{Op: "dump", Err: err}
	}
	for i, v := range r {
		if _, err := fmt.Fprintf(w, "%#02x 0x%X %08b\n", d.Address, i, v); err != nil {
			return err
		}
	}
	return nil
}
