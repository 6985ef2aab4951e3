package ds1337

// Registers. The timekeeping block starts at Time and is laid out as
// second, minute, hour, day, date, month/century, year.
const (
	Address  = 0x68 // I2C address for DS1337
	Time     = 0x00 // Time registers starting with seconds
	Alarm1   = 0x07 // Alarm 1 registers starting with seconds
	Alarm2   = 0x0B // Alarm 2 registers starting with minutes
	Control  = 0x0E // Special purpose (control) register
	Status   = 0x0F // Status register
	NumRegs  = 0x10 // Size of the register file
	timeRegs = 7    // Second..Year
)

// Field masks, straight from the datasheet's timekeeping register table.
const (
	maskLoBCD   = 0x0F // units digit, every BCD field
	maskHiSec   = 0x70 // tens of seconds (bit 7 is unused)
	maskHiMin   = 0x70 // tens of minutes
	maskHiHour  = 0x30 // tens of hours in 24-hour mode; bit 6 selects 12-hour mode
	maskDay     = 0x07 // day of week, 1-7, not BCD
	maskHiDate  = 0x30 // tens of date
	maskHiMth   = 0x10 // tens of month
	maskCentury = 0x80 // century bit, shares the month register
	maskHiYear  = 0xF0 // tens of year
)

// Control register bits.
const (
	ControlEOSC  = 0x80 // oscillator disabled when set
	ControlRS2   = 0x10 // square-wave rate select
	ControlRS1   = 0x08
	ControlINTCN = 0x04 // interrupt control
	ControlA2IE  = 0x02 // alarm 2 interrupt enable
	ControlA1IE  = 0x01 // alarm 1 interrupt enable
)

// Status register bits.
const (
	StatusOSF = 0x80 // oscillator stop flag
	StatusA2F = 0x02 // alarm 2 flag
	StatusA1F = 0x01 // alarm 1 flag
)
