package ds1337

// DSTRule selects how daylight saving time is applied when the clock is set
// from a timestamp.
type DSTRule uint8

const (
	DSTNone DSTRule = iota
	DSTUS
	DSTEU
	// DSTLegacyUS is DSTUS, except years before 2006 use the April-October
	// window.
	DSTLegacyUS
)

var dstNames = [...]string{"none", "us", "eu", "legacy"}

func (r DSTRule) String() string {
	if int(r) < len(dstNames) {
		return dstNames[r]
	}
	return "unknown"
}

// ParseDSTRule returns the rule named s, as printed by String.
func ParseDSTRule(s string) (DSTRule, bool) {
	for i, n := range dstNames {
		if n == s {
			return DSTRule(i), true
		}
	}
	return DSTNone, false
}

// dstChangeHour is the local standard-time hour at which the window opens and
// closes.
const dstChangeHour = 2

// Window is the part of a year in which local time runs one hour ahead. It
// opens at 02:00 on StartDate of StartMonth and closes at 02:00 on StopDate
// of StopMonth.
type Window struct {
	StartMonth, StartDate int
	StopMonth, StopDate   int
}

// Window returns the DST window of year, or false for DSTNone.
//
// The start date is 31-((5y/4+1) mod 7) in March for both rules; the US stop
// date is 7-((5y/4+1) mod 7) in November and the EU stop date repeats the
// start formula in November.
func (r DSTRule) Window(year int) (Window, bool) {
	k := (year*5/4 + 1) % 7
	switch r {
	case DSTUS, DSTLegacyUS:
		if r == DSTLegacyUS && year < 2006 {
			return Window{
				StartMonth: 4, StartDate: (2+6*year-year/4)%7 + 1,
				StopMonth: 10, StopDate: 14 - k,
			}, true
		}
		return Window{StartMonth: 3, StartDate: 31 - k, StopMonth: 11, StopDate: 7 - k}, true
	case DSTEU:
		return Window{StartMonth: 3, StartDate: 31 - k, StopMonth: 11, StopDate: 31 - k}, true
	}
	return Window{}, false
}

// Contains reports whether the standard-time instant month/date/hour lies in
// the window.
func (w Window) Contains(month, date, hour int) bool {
	if month < w.StartMonth || month > w.StopMonth {
		return false
	}
	if month < w.StopMonth {
		return month > w.StartMonth || date > w.StartDate ||
			date == w.StartDate && hour >= dstChangeHour
	}
	return date < w.StopDate || date == w.StopDate && hour < dstChangeHour
}
