package ds1337

import "strconv"

// Field identifies one calendar field of the timekeeping registers. The value
// doubles as the field's byte index in a RegisterImage, except Century, which
// lives in bit 7 of the Month byte.
type Field uint8

const (
	Second Field = iota
	Minute
	Hour
	DayOfWeek
	Date
	Month
	Year
	Century
)

var fieldNames = [...]string{"second", "minute", "hour", "day", "date", "month", "year", "century"}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// ParseField returns the field with the given name, as printed by String.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// RegisterImage mirrors the chip's timekeeping registers 0x00-0x06. Byte 7 is
// reserved and carries no meaning.
type RegisterImage [8]uint8

// Get returns the decoded value of f. Year is returned as a calendar year,
// combining the two-digit year with the century bit; Century is 0 or 1.
func (r *RegisterImage) Get(f Field) int {
	switch f {
	case Second:
		return DecodeBCD(r[Second] & (maskHiSec | maskLoBCD))
	case Minute:
		return DecodeBCD(r[Minute] & (maskHiMin | maskLoBCD))
	case Hour:
		return DecodeBCD(r[Hour] & (maskHiHour | maskLoBCD))
	case DayOfWeek:
		return int(r[DayOfWeek] & maskDay)
	case Date:
		return DecodeBCD(r[Date] & (maskHiDate | maskLoBCD))
	case Month:
		return DecodeBCD(r[Month] & (maskHiMth | maskLoBCD))
	case Year:
		return 1900 + 100*r.Get(Century) + DecodeBCD(r[Year]&(maskHiYear|maskLoBCD))
	case Century:
		if r[Month]&maskCentury != 0 {
			return 1
		}
		return 0
	}
	return -1
}

// Set validates v, encodes it and stores it in the image. The century bit is
// kept across Month writes and vice versa. Year takes a calendar year in
// [1900,2099] and updates the century bit along with the year byte.
//
// Out-of-domain values leave the image untouched and return a *FieldError.
func (r *RegisterImage) Set(f Field, v int) error {
	if !inDomain(f, v) {
		return &FieldError{Field: f, Value: v}
	}
	switch f {
	case Second, Minute, Hour, Date:
		r[f], _ = EncodeBCD(v)
	case DayOfWeek:
		r[DayOfWeek] = uint8(v)
	case Month:
		b, _ := EncodeBCD(v)
		r[Month] = b&^maskCentury | r[Month]&maskCentury
	case Year:
		century := 0
		if v >= 2000 {
			century = 1
		}
		r[Year], _ = EncodeBCD(v - 1900 - 100*century)
		r.Set(Century, century)
	case Century:
		if v > 0 {
			r[Month] |= maskCentury
		} else {
			r[Month] &^= maskCentury
		}
	}
	return nil
}

// inDomain reports whether v may be stored in f. Date is only bounded by 31,
// not by the length of the stored month.
func inDomain(f Field, v int) bool {
	switch f {
	case Second, Minute:
		return v >= 0 && v < 60
	case Hour:
		return v >= 0 && v < 24
	case DayOfWeek:
		return v >= 1 && v <= 7
	case Date:
		return v >= 1 && v <= 31
	case Month:
		return v >= 1 && v <= 12
	case Year:
		return v >= 1900 && v <= 2099
	case Century:
		return v == 0 || v == 1
	}
	return false
}

// Fields is the decoded content of a RegisterImage.
type Fields struct {
	Second    int
	Minute    int
	Hour      int // 24-hour clock
	DayOfWeek int // 1-7, relative to the configured anchor
	Date      int
	Month     int
	Year      int  // two-digit year
	Century   bool // set for 20xx
}

// CalendarYear returns the full year, 1900-2099.
func (f Fields) CalendarYear() int {
	if f.Century {
		return 2000 + f.Year
	}
	return 1900 + f.Year
}

// Fields decodes every field of the image.
func (r *RegisterImage) Fields() Fields {
	return Fields{
		Second:    r.Get(Second),
		Minute:    r.Get(Minute),
		Hour:      r.Get(Hour),
		DayOfWeek: r.Get(DayOfWeek),
		Date:      r.Get(Date),
		Month:     r.Get(Month),
		Year:      DecodeBCD(r[Year] & (maskHiYear | maskLoBCD)),
		Century:   r.Get(Century) == 1,
	}
}

// SetFields stores all of f in the image. Nothing is written unless every
// field is in its domain.
func (r *RegisterImage) SetFields(f Fields) error {
	if f.Year < 0 || f.Year > 99 {
		return &FieldError{Field: Year, Value: f.Year}
	}
	next := *r
	for _, s := range [...]struct {
		f Field
		v int
	}{
		{Second, f.Second},
		{Minute, f.Minute},
		{Hour, f.Hour},
		{DayOfWeek, f.DayOfWeek},
		{Date, f.Date},
		{Month, f.Month},
		{Year, f.CalendarYear()},
	} {
		if err := next.Set(s.f, s.v); err != nil {
			return err
		}
	}
	*r = next
	return nil
}

// String formats f as "2006-01-02 15:04:05 Mon".
func (f Fields) String() string {
	b := make([]byte, 0, 23)
	b = strconv.AppendInt(b, int64(f.CalendarYear()), 10)
	b = appendPad2(append(b, '-'), f.Month)
	b = appendPad2(append(b, '-'), f.Date)
	b = appendPad2(append(b, ' '), f.Hour)
	b = appendPad2(append(b, ':'), f.Minute)
	b = appendPad2(append(b, ':'), f.Second)
	b = append(b, ' ')
	return string(append(b, WeekdayName(f.DayOfWeek)...))
}

func appendPad2(b []byte, v int) []byte {
	if v >= 0 && v < 10 {
		b = append(b, '0')
	}
	return strconv.AppendInt(b, int64(v), 10)
}
