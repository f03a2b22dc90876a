package model

import "time"

// Interval is a working span reconstructed from an in/out pair.
// Open is set when End was substituted with the current time because the
// timesheet ends with an unmatched in record.
type Interval struct {
	Start time.Time
	End   time.Time
	Open  bool
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Date is a UTC calendar day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the UTC calendar day of t.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the unset sentinel day.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// DailyTotal is the worked time attributed to one calendar day.
type DailyTotal struct {
	Date   Date
	Worked time.Duration
}

// Hours returns whole hours worked; seconds never round up.
func (t DailyTotal) Hours() int {
	return int(t.Worked/time.Minute) / 60
}

// Minutes returns the minutes remaining after Hours.
func (t DailyTotal) Minutes() int {
	return int(t.Worked/time.Minute) % 60
}
