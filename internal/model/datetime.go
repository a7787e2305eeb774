// Package model holds the domain types shared by the write and read paths:
// validated value types (DateTime, UID), the price record and its schema,
// query parameters and the batch response shapes.
package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// CanonicalTimeLayout is the serialized form of every DateTime crossing a
// boundary: microsecond precision with an explicit offset, UTC rendered as
// +00:00.
const CanonicalTimeLayout = "2006-01-02T15:04:05.000000-07:00"

// dateOnlyLayout is accepted as input and interpreted as UTC midnight.
const dateOnlyLayout = "2006-01-02"

// timestampLayouts are the broader input forms tried after the strict
// date-only form. Layouts without an offset are interpreted as UTC.
var timestampLayouts = []struct {
	layout string
	naive  bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05.999999999-0700", false},
	{"2006-01-02 15:04:05.999999999Z07:00", false},
	{"2006-01-02T15:04:05.999999999", true},
	{"2006-01-02 15:04:05.999999999", true},
}

// DateTime is an immutable point in time, always normalized to UTC.
// The zero value is invalid; construct through ParseDateTime, DateTimeFrom
// or Now.
type DateTime struct {
	t time.Time
}

// ParseDateTime parses a date-only or timestamp string into a DateTime.
// Unrecognized forms fail with an invalid_format FieldError scoped to the
// given field name.
func ParseDateTime(field, value string) (DateTime, *FieldError) {
	if t, err := time.ParseInLocation(dateOnlyLayout, value, time.UTC); err == nil {
		return DateTime{t: t}, nil
	}
	for _, l := range timestampLayouts {
		var t time.Time
		var err error
		if l.naive {
			t, err = time.ParseInLocation(l.layout, value, time.UTC)
		} else {
			t, err = time.Parse(l.layout, value)
		}
		if err == nil {
			return DateTime{t: t.UTC()}, nil
		}
	}
	return DateTime{}, InvalidFormat(field, fmt.Sprintf("invalid datetime format, must be YYYY-MM-DD or ISO-8601: %q", value))
}

// DateTimeFrom normalizes a native time value to a DateTime.
func DateTimeFrom(t time.Time) DateTime {
	return DateTime{t: t.UTC()}
}

// Now returns the current instant in UTC.
func Now() DateTime {
	return DateTime{t: time.Now().UTC()}
}

// NowIn returns the current instant normalized from the given location.
// The stored instant is the same regardless of location.
func NowIn(loc *time.Location) DateTime {
	if loc == nil {
		loc = time.UTC
	}
	return DateTime{t: time.Now().In(loc).UTC()}
}

// IsZero reports whether the DateTime was never set.
func (d DateTime) IsZero() bool { return d.t.IsZero() }

// Time returns the underlying UTC time value.
func (d DateTime) Time() time.Time { return d.t }

// String renders the canonical serialized form.
func (d DateTime) String() string { return d.t.Format(CanonicalTimeLayout) }

func (d DateTime) Before(other DateTime) bool    { return d.t.Before(other.t) }
func (d DateTime) After(other DateTime) bool     { return d.t.After(other.t) }
func (d DateTime) AtOrBefore(other DateTime) bool { return !d.t.After(other.t) }
func (d DateTime) AtOrAfter(other DateTime) bool  { return !d.t.Before(other.t) }
func (d DateTime) Equal(other DateTime) bool     { return d.t.Equal(other.t) }

// InPast reports whether d is strictly earlier than the reference instant.
// With no reference it compares against Now.
func (d DateTime) InPast(reference ...DateTime) bool {
	return d.Before(refOrNow(reference))
}

// InFuture reports whether d is strictly later than the reference instant.
// With no reference it compares against Now.
func (d DateTime) InFuture(reference ...DateTime) bool {
	return d.After(refOrNow(reference))
}

func refOrNow(reference []DateTime) DateTime {
	if len(reference) > 0 {
		return reference[0]
	}
	return Now()
}

// Minus returns a new DateTime shifted earlier by the given duration.
func (d DateTime) Minus(dur time.Duration) DateTime {
	return DateTime{t: d.t.Add(-dur)}
}

// Plus returns a new DateTime shifted later by the given duration.
func (d DateTime) Plus(dur time.Duration) DateTime {
	return DateTime{t: d.t.Add(dur)}
}

// Sub returns the duration d - other.
func (d DateTime) Sub(other DateTime) time.Duration {
	return d.t.Sub(other.t)
}

// MarshalJSON serializes the canonical string form.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON parses any accepted input form.
func (d *DateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ferr := ParseDateTime("", s)
	if ferr != nil {
		return fmt.Errorf("%s", ferr.Message)
	}
	*d = parsed
	return nil
}
