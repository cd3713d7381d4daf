package moment

import (
	"time"

	"github.com/shandysiswandi/webkit/internal/pkg/clock"
)

// Unit names a calendar field.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Month
	Year
)

// String returns the lower-case unit name.
func (u Unit) String() string {
	switch u {
	case Millisecond:
		return "millisecond"
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return "unknown"
	}
}

// hostLayout mirrors the default textual form browsers give a Date.
const hostLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// Moment is an immutable instant. Every operation returns a new value.
type Moment struct {
	t time.Time
}

// New wraps t.
func New(t time.Time) Moment {
	return Moment{t: t}
}

// FromMillis builds a local-time Moment from epoch milliseconds.
func FromMillis(ms int64) Moment {
	return Moment{t: time.UnixMilli(ms)}
}

// Now returns the current instant reported by c.
func Now(c clock.Clocker) Moment {
	return Moment{t: c.Now()}
}

type parts struct {
	year  int
	month time.Month
	day   int
	hour  int
	min   int
	sec   int
	nsec  int
}

func (m Moment) parts() parts {
	y, mo, d := m.t.Date()
	h, mi, s := m.t.Clock()
	return parts{year: y, month: mo, day: d, hour: h, min: mi, sec: s, nsec: m.t.Nanosecond()}
}

func (p parts) build(loc *time.Location) time.Time {
	return time.Date(p.year, p.month, p.day, p.hour, p.min, p.sec, p.nsec, loc)
}

// Add moves exactly one calendar field by count (which may be negative) and
// lets time.Date normalise any overflow. An unknown unit returns m unchanged.
func (m Moment) Add(u Unit, count int) Moment {
	p := m.parts()
	switch u {
	case Millisecond:
		p.nsec += count * int(time.Millisecond)
	case Second:
		p.sec += count
	case Minute:
		p.min += count
	case Hour:
		p.hour += count
	case Day:
		p.day += count
	case Month:
		p.month += time.Month(count)
	case Year:
		p.year += count
	default:
		return m
	}

	return Moment{t: p.build(m.t.Location())}
}

// StartOf zeroes every field finer than u. An unknown unit returns m unchanged.
func (m Moment) StartOf(u Unit) Moment {
	p := m.parts()
	switch u {
	case Year:
		p.month = time.January
		fallthrough
	case Month:
		p.day = 1
		fallthrough
	case Day:
		p.hour = 0
		fallthrough
	case Hour:
		p.min = 0
		fallthrough
	case Minute:
		p.sec = 0
		fallthrough
	case Second:
		p.nsec = 0
	case Millisecond:
		p.nsec -= p.nsec % int(time.Millisecond)
	default:
		return m
	}

	return Moment{t: p.build(m.t.Location())}
}

// AddSecond adds count seconds.
func (m Moment) AddSecond(count int) Moment {
	return m.Add(Second, count)
}

// AddMinute adds count minutes.
func (m Moment) AddMinute(count int) Moment {
	return m.Add(Minute, count)
}

// AddHour adds count hours.
func (m Moment) AddHour(count int) Moment {
	return m.Add(Hour, count)
}

// AddDay adds count days.
func (m Moment) AddDay(count int) Moment {
	return m.Add(Day, count)
}

// AddMonth adds count months.
func (m Moment) AddMonth(count int) Moment {
	return m.Add(Month, count)
}

// AddYear adds count years.
func (m Moment) AddYear(count int) Moment {
	return m.Add(Year, count)
}

// StartOfSecond truncates to the start of the second.
func (m Moment) StartOfSecond() Moment {
	return m.StartOf(Second)
}

// StartOfMinute truncates to the start of the minute.
func (m Moment) StartOfMinute() Moment {
	return m.StartOf(Minute)
}

// StartOfHour truncates to the start of the hour.
func (m Moment) StartOfHour() Moment {
	return m.StartOf(Hour)
}

// StartOfDay truncates to the start of the day.
func (m Moment) StartOfDay() Moment {
	return m.StartOf(Day)
}

// StartOfMonth truncates to the start of the month.
func (m Moment) StartOfMonth() Moment {
	return m.StartOf(Month)
}

// StartOfYear truncates to the start of the year.
func (m Moment) StartOfYear() Moment {
	return m.StartOf(Year)
}

// Clone returns an independent copy. Moment is a value, so this is a plain copy.
func (m Moment) Clone() Moment {
	return Moment{t: m.t}
}

// ValueOf returns epoch milliseconds.
func (m Moment) ValueOf() int64 {
	return m.t.UnixMilli()
}

// Time returns the wrapped time.
func (m Moment) Time() time.Time {
	return m.t
}

// IsZero reports whether m wraps the zero time.
func (m Moment) IsZero() bool {
	return m.t.IsZero()
}

// Before reports whether m is earlier than o at millisecond precision.
func (m Moment) Before(o Moment) bool { return m.ValueOf() < o.ValueOf() }

// After reports whether m is later than o at millisecond precision.
func (m Moment) After(o Moment) bool { return m.ValueOf() > o.ValueOf() }

// Equal reports whether m and o denote the same millisecond.
func (m Moment) Equal(o Moment) bool { return m.ValueOf() == o.ValueOf() }

// String renders m like a browser renders a Date.
func (m Moment) String() string {
	return m.t.Format(hostLayout)
}
