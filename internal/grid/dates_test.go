package grid

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // storage form, "" when ok=false expected
		ok    bool
	}{
		{name: "iso date", input: "2025-03-15", want: "03/15/2025", ok: true},
		{name: "iso datetime", input: "2025-03-15T10:30:00", want: "03/15/2025", ok: true},
		{name: "rfc3339", input: "2025-03-15T10:30:00Z", want: "03/15/2025", ok: true},
		{name: "storage form", input: "03/15/2025", want: "03/15/2025", ok: true},
		{name: "surrounding whitespace", input: "  2025-03-15  ", want: "03/15/2025", ok: true},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "not a date", ok: false},
		{name: "wrong separator", input: "15.03.2025", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && FormatDateForStorage(got) != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, FormatDateForStorage(got), tt.want)
			}
		})
	}
}

func TestFormatDateForDisplay(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "stored form passes through", input: "03/15/2025", want: "03/15/2025"},
		{name: "iso input normalized", input: "2025-03-15", want: "03/15/2025"},
		{name: "unparseable falls back to raw", input: "Q1 2025", want: "Q1 2025"},
		{name: "empty stays empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateForDisplay(tt.input); got != tt.want {
				t.Errorf("FormatDateForDisplay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Property-based test: storage format round-trips through the parser
func TestDates_PropertyRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	epoch := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

	properties.Property("format then parse preserves the calendar day", prop.ForAll(
		func(days int) bool {
			day := epoch.AddDate(0, 0, days)
			stored := FormatDateForStorage(day)

			parsed, ok := ParseDate(stored)
			if !ok {
				return false
			}
			return parsed.Year() == day.Year() &&
				parsed.Month() == day.Month() &&
				parsed.Day() == day.Day()
		},
		gen.IntRange(0, 365*80),
	))

	properties.TestingRun(t)
}
