package ds1337

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestDSTWindow(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		rule DSTRule
		year int
		want Window
	}{
		{DSTUS, 2024, Window{StartMonth: 3, StartDate: 27, StopMonth: 11, StopDate: 3}},
		{DSTEU, 2024, Window{StartMonth: 3, StartDate: 27, StopMonth: 11, StopDate: 27}},
		{DSTUS, 2000, Window{StartMonth: 3, StartDate: 29, StopMonth: 11, StopDate: 5}},
		{DSTLegacyUS, 2000, Window{StartMonth: 4, StartDate: 2, StopMonth: 10, StopDate: 12}},
		{DSTLegacyUS, 2024, Window{StartMonth: 3, StartDate: 27, StopMonth: 11, StopDate: 3}},
	}
	for _, test := range tests {
		got, ok := test.rule.Window(test.year)
		c.Assert(ok, qt.IsTrue)
		c.Assert(got, qt.Equals, test.want, qt.Commentf("%v %d", test.rule, test.year))
	}
	_, ok := DSTNone.Window(2024)
	c.Assert(ok, qt.IsFalse)
}

func TestWindowContains(t *testing.T) {
	c := qt.New(t)
	w := Window{StartMonth: 3, StartDate: 27, StopMonth: 11, StopDate: 3}
	tests := []struct {
		month, date, hour int
		want              bool
	}{
		{2, 28, 12, false},
		{3, 26, 23, false},
		{3, 27, 1, false},
		{3, 27, 2, true},
		{3, 28, 0, true},
		{7, 1, 0, true},
		{11, 2, 23, true},
		{11, 3, 1, true},
		{11, 3, 2, false},
		{11, 4, 0, false},
		{12, 1, 0, false},
	}
	for _, test := range tests {
		c.Assert(w.Contains(test.month, test.date, test.hour), qt.Equals, test.want,
			qt.Commentf("%d-%d %d:00", test.month, test.date, test.hour))
	}
}

func TestSpringForward(t *testing.T) {
	c := qt.New(t)
	cal := Calendar{DST: DSTUS}
	boundary := uint32(time.Date(2024, 3, 27, 2, 0, 0, 0, time.UTC).Unix())

	before, err := cal.FieldsFromTimestamp(boundary - 1)
	c.Assert(err, qt.IsNil)
	c.Assert([3]int{before.Hour, before.Minute, before.Second}, qt.Equals, [3]int{1, 59, 59})
	c.Assert(before.Date, qt.Equals, 27)

	for i := 0; i < 2; i++ {
		after, err := cal.FieldsFromTimestamp(boundary + 1)
		c.Assert(err, qt.IsNil)
		c.Assert([3]int{after.Hour, after.Minute, after.Second}, qt.Equals, [3]int{3, 0, 1})
		c.Assert(after.Date, qt.Equals, 27)
	}
}

func TestFallBack(t *testing.T) {
	c := qt.New(t)
	cal := Calendar{DST: DSTUS}
	boundary := uint32(time.Date(2024, 11, 3, 2, 0, 0, 0, time.UTC).Unix())

	before, err := cal.FieldsFromTimestamp(boundary - 1)
	c.Assert(err, qt.IsNil)
	c.Assert(before.Hour, qt.Equals, 2)
	c.Assert(before.Minute, qt.Equals, 59)

	after, err := cal.FieldsFromTimestamp(boundary)
	c.Assert(err, qt.IsNil)
	c.Assert(after.Hour, qt.Equals, 2)
	c.Assert(after.Minute, qt.Equals, 0)
}

func TestDSTWithOffset(t *testing.T) {
	c := qt.New(t)
	cal := Calendar{GMTOffset: -5, DST: DSTUS}
	// 12:00 UTC on July 4th is 07:00 EST, 08:00 with DST.
	f, err := cal.FieldsFromTimestamp(uint32(time.Date(2024, 7, 4, 12, 0, 0, 0, time.UTC).Unix()))
	c.Assert(err, qt.IsNil)
	c.Assert(f.Hour, qt.Equals, 8)

	// The shift can move the date.
	f, err = cal.FieldsFromTimestamp(uint32(time.Date(2024, 7, 5, 4, 30, 0, 0, time.UTC).Unix()))
	c.Assert(err, qt.IsNil)
	c.Assert([3]int{f.Date, f.Hour, f.Minute}, qt.Equals, [3]int{5, 0, 30})

	f, err = cal.FieldsFromTimestamp(uint32(time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC).Unix()))
	c.Assert(err, qt.IsNil)
	c.Assert(f.Hour, qt.Equals, 7)
}

func TestParseDSTRule(t *testing.T) {
	c := qt.New(t)
	for r := DSTNone; r <= DSTLegacyUS; r++ {
		got, ok := ParseDSTRule(r.String())
		c.Assert(ok, qt.IsTrue)
		c.Assert(got, qt.Equals, r)
	}
	_, ok := ParseDSTRule("mars")
	c.Assert(ok, qt.IsFalse)
}

func TestEUWindowRunsPastMonthEnd(t *testing.T) {
	c := qt.New(t)
	cal := Calendar{DST: DSTEU}
	w, _ := DSTEU.Window(2027)
	c.Assert(w.StopDate, qt.Equals, 31)

	f, err := cal.FieldsFromTimestamp(uint32(time.Date(2027, 11, 30, 12, 0, 0, 0, time.UTC).Unix()))
	c.Assert(err, qt.IsNil)
	c.Assert([3]int{f.Month, f.Date, f.Hour}, qt.Equals, [3]int{11, 30, 13})

	f, err = cal.FieldsFromTimestamp(uint32(time.Date(2027, 12, 1, 12, 0, 0, 0, time.UTC).Unix()))
	c.Assert(err, qt.IsNil)
	c.Assert([3]int{f.Month, f.Date, f.Hour}, qt.Equals, [3]int{12, 1, 12})
}

func TestLegacyUSBefore2006(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		when   time.Time
		legacy int
		us     int
	}{
		{time.Date(2000, 4, 1, 12, 0, 0, 0, time.UTC), 12, 13},
		{time.Date(2000, 4, 15, 12, 0, 0, 0, time.UTC), 13, 13},
		{time.Date(2000, 10, 20, 12, 0, 0, 0, time.UTC), 12, 13},
		{time.Date(2024, 10, 20, 12, 0, 0, 0, time.UTC), 13, 13},
	}
	for _, test := range tests {
		ts := uint32(test.when.Unix())
		f, err := Calendar{DST: DSTLegacyUS}.FieldsFromTimestamp(ts)
		c.Assert(err, qt.IsNil)
		c.Assert(f.Hour, qt.Equals, test.legacy, qt.Commentf("legacy %v", test.when))
		f, err = Calendar{DST: DSTUS}.FieldsFromTimestamp(ts)
		c.Assert(err, qt.IsNil)
		c.Assert(f.Hour, qt.Equals, test.us, qt.Commentf("us %v", test.when))
	}
}

func TestUTCFromFieldsRemovesDST(t *testing.T) {
	c := qt.New(t)
	for _, rule := range []DSTRule{DSTNone, DSTUS, DSTEU, DSTLegacyUS} {
		for _, year := range []int{2000, 2024, 2027} {
			cal := Calendar{GMTOffset: -5, DST: rule}
			start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
			end := time.Date(year+1, 1, 1, 0, 0, 0, 0, time.UTC).Unix()
			for u := start; u < end; u += 1800 {
				f, err := cal.FieldsFromTimestamp(uint32(u))
				c.Assert(err, qt.IsNil)
				if rule != DSTNone && inWindow(cal, u-3600) && !inWindow(cal, u) {
					// The hour after the window closes reads like the
					// last hour inside it.
					continue
				}
				got, err := cal.UTCFromFields(f)
				c.Assert(err, qt.IsNil)
				c.Assert(got, qt.Equals, uint32(u), qt.Commentf("%v %s", rule, f))
			}
		}
	}
}

func inWindow(cal Calendar, u int64) bool {
	f, err := Calendar{GMTOffset: cal.GMTOffset}.FieldsFromTimestamp(uint32(u))
	if err != nil {
		return false
	}
	w, ok := cal.DST.Window(f.CalendarYear())
	return ok && w.Contains(f.Month, f.Date, f.Hour)
}
