// Package moment provides Moment, an immutable point in time with calendar
// field arithmetic.
//
// Arithmetic works on the calendar fields of the wrapped time in its own
// location and rebuilds the instant with time.Date, so overflow rolls over
// the same way the standard library normalises it (month 13 becomes January
// of the next year, day 32 becomes the first of the next month, and so on).
//
//	m := moment.New(t).StartOf(moment.Day).Add(moment.Hour, 9)
//	fmt.Println(m.Format("DD.MM.YYYY hh:mm"))
package moment
