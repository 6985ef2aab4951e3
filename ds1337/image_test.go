package ds1337

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestImageMasks(t *testing.T) {
	c := qt.New(t)
	img := RegisterImage{
		Second:    0xD9, // bit 7 is not part of the value
		Minute:    0x85,
		Hour:      0x63, // 12-hour select bit ignored
		DayOfWeek: 0xFB,
		Date:      0xF1,
		Month:     0x92, // century bit + 12
		Year:      0x99,
		7:         0xAA,
	}
	c.Assert(img.Get(Second), qt.Equals, 59)
	c.Assert(img.Get(Minute), qt.Equals, 5)
	c.Assert(img.Get(Hour), qt.Equals, 23)
	c.Assert(img.Get(DayOfWeek), qt.Equals, 3)
	c.Assert(img.Get(Date), qt.Equals, 31)
	c.Assert(img.Get(Month), qt.Equals, 12)
	c.Assert(img.Get(Century), qt.Equals, 1)
	c.Assert(img.Get(Year), qt.Equals, 2099)
}

func TestSetRejectsOutOfDomain(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		f Field
		v int
	}{
		{Second, 60},
		{Second, -1},
		{Minute, 60},
		{Hour, 24},
		{DayOfWeek, 0},
		{DayOfWeek, 8},
		{Date, 0},
		{Date, 32},
		{Month, 0},
		{Month, 13},
		{Year, 1899},
		{Year, 2100},
		{Century, 2},
		{Field(9), 0},
	}
	for _, test := range tests {
		img := RegisterImage{0x10, 0x20, 0x08, 1, 0x15, 0x86, 0x24}
		before := img
		err := img.Set(test.f, test.v)
		c.Assert(err, qt.ErrorIs, ErrInvalidFieldValue, qt.Commentf("%v=%d", test.f, test.v))
		var fe *FieldError
		c.Assert(err, qt.ErrorAs, &fe)
		c.Assert(fe.Field, qt.Equals, test.f)
		c.Assert(fe.Value, qt.Equals, test.v)
		c.Assert(img, qt.Equals, before)
	}
}

func TestSetHour24(t *testing.T) {
	c := qt.New(t)
	var img RegisterImage
	c.Assert(img.Set(Hour, 24), qt.ErrorIs, ErrInvalidFieldValue)
	c.Assert(img.Set(Hour, 23), qt.IsNil)
	c.Assert(img[Hour], qt.Equals, uint8(0x23))
}

func TestCenturyBitSharesMonth(t *testing.T) {
	c := qt.New(t)
	var img RegisterImage
	c.Assert(img.Set(Year, 2000), qt.IsNil)
	c.Assert(img.Get(Century), qt.Equals, 1)
	c.Assert(img[Year], qt.Equals, uint8(0x00))

	c.Assert(img.Set(Month, 11), qt.IsNil)
	c.Assert(img[Month], qt.Equals, uint8(0x91))
	c.Assert(img.Get(Year), qt.Equals, 2000)
	c.Assert(img.Get(Month), qt.Equals, 11)

	c.Assert(img.Set(Century, 0), qt.IsNil)
	c.Assert(img.Get(Month), qt.Equals, 11)
	c.Assert(img.Get(Year), qt.Equals, 1900)

	c.Assert(img.Set(Year, 1999), qt.IsNil)
	c.Assert(img[Year], qt.Equals, uint8(0x99))
	c.Assert(img[Month], qt.Equals, uint8(0x11))
}

func TestDateNotCheckedAgainstMonth(t *testing.T) {
	c := qt.New(t)
	var img RegisterImage
	c.Assert(img.Set(Month, 2), qt.IsNil)
	c.Assert(img.Set(Date, 31), qt.IsNil)
	c.Assert(img.Get(Date), qt.Equals, 31)
}

func TestSetFieldsAllOrNothing(t *testing.T) {
	c := qt.New(t)
	var img RegisterImage
	f := Fields{Second: 30, Minute: 45, Hour: 13, DayOfWeek: 4, Date: 29, Month: 2, Year: 24, Century: true}
	c.Assert(img.SetFields(f), qt.IsNil)
	c.Assert(img, qt.Equals, RegisterImage{0x30, 0x45, 0x13, 0x04, 0x29, 0x82, 0x24, 0})
	c.Assert(img.Fields(), qt.Equals, f)

	bad := f
	bad.Minute = 75
	c.Assert(img.SetFields(bad), qt.ErrorIs, ErrInvalidFieldValue)
	c.Assert(img.Fields(), qt.Equals, f)

	bad = f
	bad.Year = 124
	c.Assert(img.SetFields(bad), qt.ErrorIs, ErrInvalidFieldValue)
}

func TestFieldNames(t *testing.T) {
	c := qt.New(t)
	for f := Second; f <= Century; f++ {
		got, ok := ParseField(f.String())
		c.Assert(ok, qt.IsTrue)
		c.Assert(got, qt.Equals, f)
	}
	_, ok := ParseField("fortnight")
	c.Assert(ok, qt.IsFalse)
	c.Assert(Field(12).String(), qt.Equals, "field(12)")
}

func TestFieldsString(t *testing.T) {
	c := qt.New(t)
	f := Fields{Second: 5, Minute: 4, Hour: 3, DayOfWeek: 1, Date: 2, Month: 1, Year: 6, Century: true}
	c.Assert(f.String(), qt.Equals, "2006-01-02 03:04:05 Sun")
}
