package model

import (
	"testing"
	"time"
)

func TestParseDateTimeAcceptedForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"date only is UTC midnight", "2023-12-31", "2023-12-31T00:00:00.000000+00:00"},
		{"full timestamp with Z", "2023-12-31T23:59:59Z", "2023-12-31T23:59:59.000000+00:00"},
		{"explicit UTC offset", "2023-12-31T23:59:59+00:00", "2023-12-31T23:59:59.000000+00:00"},
		{"non-UTC offset normalized", "2023-12-31T23:59:59+05:00", "2023-12-31T18:59:59.000000+00:00"},
		{"fractional seconds", "2025-03-04T11:53:58.020176+00:00", "2025-03-04T11:53:58.020176+00:00"},
		{"space separator", "2023-12-31 23:59:59", "2023-12-31T23:59:59.000000+00:00"},
		{"naive timestamp is UTC", "2023-12-31T23:59:59", "2023-12-31T23:59:59.000000+00:00"},
		{"leap day", "2024-02-29", "2024-02-29T00:00:00.000000+00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dt, ferr := ParseDateTime("timestamp", tt.input)
			if ferr != nil {
				t.Fatalf("ParseDateTime(%q) failed: %v", tt.input, ferr)
			}
			if dt.String() != tt.want {
				t.Errorf("ParseDateTime(%q) = %q, want %q", tt.input, dt.String(), tt.want)
			}
		})
	}
}

func TestParseDateTimeRejectedForms(t *testing.T) {
	inputs := []string{"", "notadate", "31-12-2023", "2023-13-01", "2023-12-31TXX:00:00Z", "1672531199"}

	for _, input := range inputs {
		dt, ferr := ParseDateTime("timestamp", input)
		if ferr == nil {
			t.Errorf("ParseDateTime(%q) = %q, expected invalid_format error", input, dt.String())
			continue
		}
		if ferr.Code != CodeInvalidFormat {
			t.Errorf("ParseDateTime(%q) error code = %q, want %q", input, ferr.Code, CodeInvalidFormat)
		}
		if ferr.Field != "timestamp" {
			t.Errorf("ParseDateTime(%q) error field = %q, want timestamp", input, ferr.Field)
		}
	}
}

func TestSerializationRoundTripIdempotent(t *testing.T) {
	inputs := []string{"2023-12-31", "2023-12-31T23:59:59Z", "2025-03-04T11:53:58.020176+03:30"}

	for _, input := range inputs {
		first, ferr := ParseDateTime("", input)
		if ferr != nil {
			t.Fatalf("parse %q: %v", input, ferr)
		}
		second, ferr := ParseDateTime("", first.String())
		if ferr != nil {
			t.Fatalf("re-parse %q: %v", first.String(), ferr)
		}
		if first.String() != second.String() {
			t.Errorf("round trip not idempotent: %q -> %q -> %q", input, first.String(), second.String())
		}
	}
}

func TestComparisons(t *testing.T) {
	past, _ := ParseDateTime("", "2020-01-01")
	same, _ := ParseDateTime("", "2020-01-01T00:00:00Z")
	later, _ := ParseDateTime("", "2020-01-02")

	if !past.Before(later) {
		t.Error("expected past.Before(later)")
	}
	if !later.After(past) {
		t.Error("expected later.After(past)")
	}
	if !past.Equal(same) {
		t.Error("expected date-only and UTC-midnight forms to be equal")
	}
	if !past.AtOrBefore(same) || !past.AtOrAfter(same) {
		t.Error("expected AtOrBefore/AtOrAfter to hold for equal instants")
	}
	if later.AtOrBefore(past) {
		t.Error("later.AtOrBefore(past) should be false")
	}
}

func TestInPastInFutureWithReference(t *testing.T) {
	ref, _ := ParseDateTime("", "2024-06-01T12:00:00Z")
	earlier, _ := ParseDateTime("", "2024-06-01T11:59:59Z")
	exact, _ := ParseDateTime("", "2024-06-01T12:00:00Z")
	later, _ := ParseDateTime("", "2024-06-01T12:00:01Z")

	if !earlier.InPast(ref) {
		t.Error("expected earlier.InPast(ref)")
	}
	if exact.InPast(ref) || exact.InFuture(ref) {
		t.Error("an equal instant is neither past nor future")
	}
	if !later.InFuture(ref) {
		t.Error("expected later.InFuture(ref)")
	}
}

func TestMinus(t *testing.T) {
	dt, _ := ParseDateTime("", "2024-06-02T12:00:00Z")
	got := dt.Minus(24 * time.Hour)
	want, _ := ParseDateTime("", "2024-06-01T12:00:00Z")
	if !got.Equal(want) {
		t.Errorf("Minus(24h) = %s, want %s", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	dt, _ := ParseDateTime("", "2024-06-01T12:00:00.5Z")
	data, err := dt.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-06-01T12:00:00.500000+00:00"` {
		t.Errorf("marshal = %s", data)
	}
	var back DateTime
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(dt) {
		t.Errorf("round trip mismatch: %s != %s", back, dt)
	}
}
