package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

// Date is a calendar day kept in a postgres date column and exchanged as
// YYYY-MM-DD everywhere else.
type Date string

// DateOf formats t as a Date in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// ParseDate validates s as YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date(s), nil
}

func (d Date) String() string { return string(d) }

func (d Date) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	if _, err := ParseDate(string(d)); err != nil {
		return nil, err
	}
	return string(d), nil
}

func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = Date(v.Format(DateLayout))
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanText(s string) error {
	// timestamps rendered as text carry the day in the first ten bytes
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ClockTime is a time of day kept in a postgres time column and exchanged as
// HH:MM:SS.
type ClockTime string

func ClockOf(t time.Time) ClockTime {
	return ClockTime(t.Format(ClockLayout))
}

// ParseClock accepts HH:MM or HH:MM:SS.
func ParseClock(s string) (ClockTime, error) {
	if t, err := time.Parse(ClockLayout, s); err == nil {
		return ClockOf(t), nil
	}
	if t, err := time.Parse("15:04", s); err == nil {
		return ClockOf(t), nil
	}
	return "", fmt.Errorf("invalid time %q, expected HH:MM:SS", s)
}

func (c ClockTime) String() string { return string(c) }

// Short drops the seconds, for messages read by people.
func (c ClockTime) Short() string {
	if len(c) >= 5 {
		return string(c[:5])
	}
	return string(c)
}

func (c ClockTime) Value() (driver.Value, error) {
	if c == "" {
		return nil, nil
	}
	if _, err := ParseClock(string(c)); err != nil {
		return nil, err
	}
	return string(c), nil
}

func (c *ClockTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = ""
		return nil
	case time.Time:
		*c = ClockOf(v)
		return nil
	case string:
		return c.scanText(v)
	case []byte:
		return c.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ClockTime", value)
	}
}

func (c *ClockTime) scanText(s string) error {
	// postgres renders fractional seconds as HH:MM:SS.ffffff
	if len(s) > len(ClockLayout) {
		s = s[:len(ClockLayout)]
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
