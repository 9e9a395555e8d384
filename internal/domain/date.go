package domain

import "time"

// DayMonthYear is a calendar date encoded as the number ddMMyyyy, e.g.
// 8 May 2025 is 8052025. Leading zeros of the day vanish in the numeric form.
type DayMonthYear int

// NewDayMonthYear encodes the calendar date of t.
func NewDayMonthYear(t time.Time) DayMonthYear {
	return DayMonthYear(t.Day()*1_000_000 + int(t.Month())*10_000 + t.Year())
}

// Day returns the day of month.
func (d DayMonthYear) Day() int { return int(d) / 1_000_000 }

// Month returns the month.
func (d DayMonthYear) Month() time.Month { return time.Month(int(d) / 10_000 % 100) }

// Year returns the four-digit year.
func (d DayMonthYear) Year() int { return int(d) % 10_000 }

// Time returns midnight UTC of the encoded date.
func (d DayMonthYear) Time() time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
