package ds1337

import "math"

// Representable calendar years. The century bit gives two centuries starting
// at 1900; timestamps start at 1970.
const (
	MinYear = 1970
	MaxYear = 2099
)

// DefaultAnchor is the day-of-week number stored for 1970-01-01. Day 1 is
// Sunday, so the epoch is numbered as a Wednesday. Clocks already set in the
// field depend on this numbering; do not change it to the ISO weekday.
const DefaultAnchor = 4

var weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdayName returns the short name of a day-of-week register value.
func WeekdayName(day int) string {
	if day < 1 || day > 7 {
		return "???"
	}
	return weekdayNames[day-1]
}

// cumulativeDays[m] is the number of days before month m+1 in a common year.
var cumulativeDays = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the length of month in year.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	n := cumulativeDays[month] - cumulativeDays[month-1]
	if month == 2 && IsLeap(year) {
		n++
	}
	return n
}

// daysBefore returns the number of days from 1970-01-01 to the first day of
// month in year.
func daysBefore(year, month int) int {
	days := (year-MinYear)*365 + cumulativeDays[month-1]
	for y := MinYear; y < year; y++ {
		if IsLeap(y) {
			days++
		}
	}
	if month > 2 && IsLeap(year) {
		days++
	}
	return days
}

// Calendar converts between Unix timestamps and register fields. The zero
// value works in UTC with no daylight saving time.
type Calendar struct {
	// GMTOffset is the number of hours local time is ahead of UTC.
	GMTOffset int
	// DST selects the daylight saving rule applied when setting the clock.
	DST DSTRule
	// Anchor is the day-of-week number of 1970-01-01, 1-7. Zero means DefaultAnchor.
	Anchor int
}

func (c Calendar) anchor() int {
	if c.Anchor < 1 || c.Anchor > 7 {
		return DefaultAnchor
	}
	return c.Anchor
}

// Weekday returns the day-of-week number for a count of days since the epoch.
func (c Calendar) Weekday(days int) int {
	return (days+c.anchor()-1)%7 + 1
}

// FieldsFromTimestamp converts a Unix timestamp to local register fields.
// The GMT offset is applied, and when the local time falls inside the DST
// window one hour is added. The window is tested once, on standard time.
func (c Calendar) FieldsFromTimestamp(ts uint32) (Fields, error) {
	local := int64(ts) + int64(c.GMTOffset)*3600
	f, err := c.civil(local)
	if err != nil {
		return Fields{}, err
	}
	if w, ok := c.DST.Window(f.CalendarYear()); ok && w.Contains(f.Month, f.Date, f.Hour) {
		return c.civil(local + 3600)
	}
	return f, nil
}

// civil splits seconds since the epoch, already in local time, into fields.
func (c Calendar) civil(secs int64) (Fields, error) {
	if secs < 0 {
		return Fields{}, ErrOutOfRange
	}
	days := int(secs / 86400)
	rem := int(secs % 86400)

	year, yday := MinYear, days
	for {
		n := 365
		if IsLeap(year) {
			n++
		}
		if yday < n {
			break
		}
		yday -= n
		year++
	}
	if year > MaxYear {
		return Fields{}, ErrOutOfRange
	}

	leap := IsLeap(year)
	month := 1
	for month < 12 {
		end := cumulativeDays[month]
		if leap && month >= 2 {
			end++
		}
		if yday < end {
			break
		}
		month++
	}
	start := cumulativeDays[month-1]
	if leap && month > 2 {
		start++
	}

	return Fields{
		Second:    rem % 60,
		Minute:    rem / 60 % 60,
		Hour:      rem / 3600,
		DayOfWeek: c.Weekday(days),
		Date:      yday - start + 1,
		Month:     month,
		Year:      year % 100,
		Century:   year >= 2000,
	}, nil
}

// TimestampFromFields converts local register fields back to a Unix
// timestamp, removing the GMT offset. Fields are taken as standard time: no
// attempt is made to tell whether they were shifted for DST. DayOfWeek is
// ignored, and Date is not checked against the length of the month.
func (c Calendar) TimestampFromFields(f Fields) (uint32, error) {
	for _, s := range [...]struct {
		f Field
		v int
	}{
		{Second, f.Second},
		{Minute, f.Minute},
		{Hour, f.Hour},
		{Date, f.Date},
		{Month, f.Month},
	} {
		if !inDomain(s.f, s.v) {
			return 0, &FieldError{Field: s.f, Value: s.v}
		}
	}
	if f.Year < 0 || f.Year > 99 {
		return 0, &FieldError{Field: Year, Value: f.Year}
	}
	year := f.CalendarYear()
	if year < MinYear {
		return 0, ErrOutOfRange
	}

	days := int64(daysBefore(year, f.Month) + f.Date - 1)
	ts := int64(f.Second) + 60*(int64(f.Minute)+60*(days*24+int64(f.Hour)-int64(c.GMTOffset)))
	if ts < 0 || ts > math.MaxUint32 {
		return 0, ErrOutOfRange
	}
	return uint32(ts), nil
}

// UTCFromFields is TimestampFromFields with the DST hour removed: when the
// instant one hour earlier lies inside the DST window, the fields are taken
// to have been shifted by FieldsFromTimestamp and that instant is returned.
// In the repeated hour at the end of the window the shifted reading wins.
func (c Calendar) UTCFromFields(f Fields) (uint32, error) {
	ts, err := c.TimestampFromFields(f)
	if err != nil || c.DST == DSTNone || ts < 3600 {
		return ts, err
	}
	std, err := c.civil(int64(ts-3600) + int64(c.GMTOffset)*3600)
	if err != nil {
		return ts, nil
	}
	if w, ok := c.DST.Window(std.CalendarYear()); ok && w.Contains(std.Month, std.Date, std.Hour) {
		return ts - 3600, nil
	}
	return ts, nil
}
