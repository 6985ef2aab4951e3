// Package ds1337 implements a driver for the DS1337 battery-backed Real-Time Clock (RTC). It reads and writes the
// timekeeping registers, converts them to and from Unix timestamps with an optional fixed GMT offset and a single
// daylight saving rule, and controls the oscillator. The DS1337 also has two alarms and a square-wave output, but
// those features remain unimplemented.
//
// Day-of-week numbers run 1-7 and count days since 1970-01-01, which is stored as DefaultAnchor (4). With day 1 taken
// as Sunday that names the epoch a Wednesday, although it was a Thursday. Clocks already set depend on this numbering,
// so it is kept as the default; set Config.Anchor to 5 for the real weekday.
//
// The driver keeps a copy of the seven timekeeping registers. It is not safe for concurrent use; callers sharing a
// device between goroutines must serialize access.
//
// Datasheet: https://www.analog.com/media/en/technical-documentation/data-sheets/DS1337-DS1337C.pdf
package ds1337

import (
	"math"
	"time"

	"tinygo.org/x/drivers"
)

// powerUpDelay is how long the crystal needs to settle after power-up.
var powerUpDelay = 250 * time.Millisecond

type Device struct {
	bus     drivers.I2C
	Address uint16
	cal     Calendar
	regs    RegisterImage
	exists  bool
	w       [1 + timeRegs]byte
}

type Config struct {
	Address uint16
	// GMTOffset is the number of hours local time is ahead of UTC. The clock
	// registers always hold local time.
	GMTOffset int
	DST       DSTRule
	// Anchor is the day-of-week number of 1970-01-01. Zero means DefaultAnchor.
	Anchor int
}

// New creates a new DS1337 driver on the provided I2C bus, which must already be configured. It does not touch the
// device; call Configure to probe it.
func New(bus drivers.I2C) Device {
	return Device{
		bus:     bus,
		Address: Address,
	}
}

// Open creates a driver and configures it, returning ErrDeviceNotFound if nothing answers at the configured address.
func Open(bus drivers.I2C, c Config) (*Device, error) {
	d := New(bus)
	if err := d.Configure(c); err != nil {
		return nil, err
	}
	return &d, nil
}

// Configure waits for the crystal to settle, checks that the chip answers and starts the oscillator if it was
// stopped. It blocks for about 250ms.
func (d *Device) Configure(c Config) error {
	if c.Address == 0 {
		c.Address = Address
	}
	d.Address = c.Address
	d.cal = Calendar{GMTOffset: c.GMTOffset, DST: c.DST, Anchor: c.Anchor}
	d.exists = false

	time.Sleep(powerUpDelay)

	ctl, err := d.Register(Control)
	if err != nil {
		return ErrDeviceNotFound
	}
	d.exists = true

	if ctl&ControlEOSC != 0 {
		return d.WriteRegister(Control, ctl&^ControlEOSC)
	}
	return nil
}

// Exists reports whether the last Configure found the chip.
func (d *Device) Exists() bool {
	return d.exists
}

// Calendar returns the conversion settings in use.
func (d *Device) Calendar() Calendar {
	return d.cal
}

// Register reads a single register.
func (d *Device) Register(reg uint8) (uint8, error) {
	var r [1]byte
	d.w[0] = reg
	if err := d.bus.Tx(d.Address, d.w[:1], r[:]); err != nil {
		return 0, &BusError{Op: "read register", Err: err}
	}
	return r[0], nil
}

// WriteRegister writes a single register.
func (d *Device) WriteRegister(reg, val uint8) error {
	d.w[0] = reg
	d.w[1] = val
	if err := d.bus.Tx(d.Address, d.w[:2], nil); err != nil {
		return &BusError{Op: "write register", Err: err}
	}
	return nil
}

// SetRegister sets the bits of mask in reg, leaving the others alone.
func (d *Device) SetRegister(reg, mask uint8) error {
	v, err := d.Register(reg)
	if err != nil {
		return err
	}
	return d.WriteRegister(reg, v|mask)
}

// UnsetRegister clears the bits of mask in reg, leaving the others alone.
func (d *Device) UnsetRegister(reg, mask uint8) error {
	v, err := d.Register(reg)
	if err != nil {
		return err
	}
	return d.WriteRegister(reg, v&^mask)
}

// StartOscillator clears EOSC so the clock runs on battery.
func (d *Device) StartOscillator() error {
	return d.UnsetRegister(Control, ControlEOSC)
}

// StopOscillator sets EOSC, halting the clock.
func (d *Device) StopOscillator() error {
	return d.SetRegister(Control, ControlEOSC)
}

func (d *Device) OscillatorRunning() (bool, error) {
	v, err := d.Register(Control)
	if err != nil {
		return false, err
	}
	return v&ControlEOSC == 0, nil
}

// LostPower reports whether the oscillator has stopped at some point since the flag was last cleared, in which case
// the time is not valid.
func (d *Device) LostPower() (bool, error) {
	v, err := d.Register(Status)
	if err != nil {
		return false, err
	}
	return v&StatusOSF != 0, nil
}

func (d *Device) ClearLostPower() error {
	return d.UnsetRegister(Status, StatusOSF)
}

// ReadImage reads the timekeeping registers in one transaction and caches them.
func (d *Device) ReadImage() (RegisterImage, error) {
	var r [timeRegs]byte
	d.w[0] = Time
	if err := d.bus.Tx(d.Address, d.w[:1], r[:]); err != nil {
		return d.regs, &BusError{Op: "read time", Err: err}
	}
	copy(d.regs[:timeRegs], r[:])
	return d.regs, nil
}

// Image returns the cached registers, as last read or written.
func (d *Device) Image() RegisterImage {
	return d.regs
}

// writeImage stores the timekeeping registers in one transaction. The cache is
// only updated once the bus accepted the write.
func (d *Device) writeImage(img RegisterImage) error {
	d.w[0] = Time
	copy(d.w[1:], img[:timeRegs])
	if err := d.bus.Tx(d.Address, d.w[:], nil); err != nil {
		return &BusError{Op: "write time", Err: err}
	}
	d.regs = img
	return nil
}

// Field returns one decoded field. With refresh false the cached registers are used and the bus is not touched.
func (d *Device) Field(f Field, refresh bool) (int, error) {
	if refresh {
		if _, err := d.ReadImage(); err != nil {
			return 0, err
		}
	}
	if f > Century {
		return 0, &FieldError{Field: f}
	}
	return d.regs.Get(f), nil
}

// SetField reads the timekeeping registers, changes one field and writes them back. Use Begin to change several
// fields with a single write.
func (d *Device) SetField(f Field, v int) error {
	if !inDomain(f, v) {
		return &FieldError{Field: f, Value: v}
	}
	t, err := d.Begin()
	if err != nil {
		return err
	}
	if err := t.Set(f, v); err != nil {
		return err
	}
	return t.Commit()
}

// Fields reads and decodes all timekeeping registers.
func (d *Device) Fields() (Fields, error) {
	img, err := d.ReadImage()
	if err != nil {
		return Fields{}, err
	}
	return img.Fields(), nil
}

// Timestamp reads the clock and returns it as a Unix timestamp. The registers are taken as standard local time; a
// DST shift applied by SetTimestamp is not removed.
func (d *Device) Timestamp() (uint32, error) {
	f, err := d.Fields()
	if err != nil {
		return 0, err
	}
	return d.cal.TimestampFromFields(f)
}

// SetTimestamp sets the clock from a Unix timestamp, applying the GMT offset and DST rule. All fields are computed
// before anything is written, so a conversion error leaves the chip untouched.
func (d *Device) SetTimestamp(ts uint32) error {
	f, err := d.cal.FieldsFromTimestamp(ts)
	if err != nil {
		return err
	}
	img := d.regs
	if err := img.SetFields(f); err != nil {
		return err
	}
	return d.writeImage(img)
}

// Set sets the clock to t.
func (d *Device) Set(t time.Time) error {
	u := t.Unix()
	if u < 0 || u > math.MaxUint32 {
		return ErrOutOfRange
	}
	return d.SetTimestamp(uint32(u))
}

// Now reads the clock as a UTC time. Unlike Timestamp, it removes the DST hour
// that SetTimestamp adds, so Set followed by Now returns the same instant.
func (d *Device) Now() (time.Time, error) {
	f, err := d.Fields()
	if err != nil {
		return time.Time{}, err
	}
	ts, err := d.cal.UTCFromFields(f)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(ts), 0).UTC(), nil
}
