package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeString is a wall-clock time of day in "HH:MM" format.
// It carries no date and no timezone; the owning entity decides
// which calendar date and location it applies to.
// "24:00" is a valid value and means end of day (exclusive bound).
type TimeString string

const minutesPerDay = 24 * 60

// NewTimeString builds a TimeString from the wall-clock part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses "HH:MM" into a TimeString.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if _, err := ts.TotalMinutes(); err != nil {
		return "", err
	}
	return ts, nil
}

// TotalMinutes returns minutes since midnight, in [0, 1440].
func (t TimeString) TotalMinutes() (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(string(t), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}
	if m < 0 || m > 59 || h < 0 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid time string format: %q", string(t))
	}
	return h*60 + m, nil
}

// AddMinutes returns the time shifted forward by m minutes.
// The result must not cross midnight; "24:00" itself is allowed.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.TotalMinutes()
	if err != nil {
		return "", err
	}
	total += m
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("time %q + %dmin crosses day boundary", string(t), m)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Malformed values compare as equal.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err1 := t.TotalMinutes()
	b, err2 := other.TotalMinutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, err1 := t.TotalMinutes()
	b, err2 := other.TotalMinutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a > b
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer so TimeString can be stored as text.
func (t TimeString) Value() (driver.Value, error) {
	if _, err := t.TotalMinutes(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		ts, err := NewTimeStringFromString(normalizeClock(v))
		if err != nil {
			return err
		}
		*t = ts
		return nil
	case []byte:
		return t.Scan(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeString", src)
	}
}

// normalizeClock trims a trailing seconds component ("10:00:00" -> "10:00"),
// which Postgres TIME columns produce.
func normalizeClock(s string) string {
	if len(s) == 8 && s[5] == ':' {
		return s[:5]
	}
	return s
}
