package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Wire formats. Dates are entered and stored as MM-DD-YYYY, times as
// 24-hour HH:MM with a derived 12-hour display form.
const (
	DateLayout   = "01-02-2006"
	Time24Layout = "15:04"
	Time12Layout = "03:04 PM"
)

var (
	ErrBadDate     = errors.New("invalid date")
	ErrBadTime     = errors.New("invalid time")
	ErrEmptyLocale = errors.New("empty locale")
)

// ParseDate parses MM-DD-YYYY input and returns the calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	return t, nil
}

// ParseTime24 parses 24-hour HH:MM input.
func ParseTime24(s string) (time.Time, error) {
	t, err := time.Parse(Time24Layout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	return t, nil
}

// To12Hour converts a valid 24-hour HH:MM string into its 12-hour
// display form, e.g. "14:30" -> "02:30 PM".
func To12Hour(time24 string) (string, error) {
	t, err := ParseTime24(time24)
	if err != nil {
		return "", err
	}
	return t.Format(Time12Layout), nil
}

// ValidateLocale accepts any non-empty free text and returns it trimmed.
func ValidateLocale(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyLocale
	}
	return s, nil
}

// EventAt combines a stored date and 24-hour time into an instant in the
// process's local timezone.
func EventAt(date, time24 string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+Time24Layout, date+" "+time24, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("event time %q %q: %w", date, time24, err)
	}
	return t, nil
}

// WeekdayName returns the long weekday name for a date, e.g. "Monday".
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}
