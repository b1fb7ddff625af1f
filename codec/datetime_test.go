package codec

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateTime_Layouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-01T00:00:00Z", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-08-07T12:30:45.123456789Z", time.Date(2024, 8, 7, 12, 30, 45, 123456789, time.UTC)},
		{"2024-08-07T14:30:45+02:00", time.Date(2024, 8, 7, 12, 30, 45, 0, time.UTC)},
		{"2024-08-07 12:30:45Z", time.Date(2024, 8, 7, 12, 30, 45, 0, time.UTC)},
		{"2024-08-07T12:30:45", time.Date(2024, 8, 7, 12, 30, 45, 0, time.UTC)},
		{"2024-08-07", time.Date(2024, 8, 7, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseDateTime(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%q: got %v want %v", tc.in, got, tc.want)
		}
		if got.Location() != time.UTC {
			t.Fatalf("%q: expected UTC, got %v", tc.in, got.Location())
		}
	}
}

func TestParseDateTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2024-02-30T00:00:00Z", "2024-13-01", "12345"} {
		if _, err := ParseDateTime(in); !errors.Is(err, ErrInvalidDateTime) {
			t.Fatalf("%q: expected ErrInvalidDateTime, got %v", in, err)
		}
	}
}

func TestFormatDateTime_Roundtrip(t *testing.T) {
	in := "2025-01-01T00:00:00Z"
	got, err := ParseDateTime(in)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if out := FormatDateTime(got); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}

	local := time.Date(2025, 1, 1, 9, 0, 0, 500000000, time.FixedZone("JST", 9*3600))
	if out := FormatDateTime(local); out != "2025-01-01T00:00:00.5Z" {
		t.Fatalf("unexpected canonical form %q", out)
	}
}
