package timeutil

import (
	"testing"
	"time"
)

func TestNow_AlwaysUTC(t *testing.T) {
	now := Now()

	if now.Location() != time.UTC {
		t.Errorf("Now() returned non-UTC timezone: %v", now.Location())
	}
}

func TestFixedClock(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	pinned := time.Date(2025, 4, 9, 10, 0, 0, 0, loc)

	clock := FixedClock(pinned)

	if !clock().Equal(pinned) {
		t.Errorf("FixedClock() = %v, want %v", clock(), pinned)
	}
	if clock().Location() != time.UTC {
		t.Errorf("FixedClock() returned non-UTC: %v", clock().Location())
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		days     int
		expected string
	}{
		{
			name:     "five days",
			input:    time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
			days:     5,
			expected: "2025-04-06 12:00:00 +0000 UTC",
		},
		{
			name:     "crosses month boundary",
			input:    time.Date(2025, 1, 30, 0, 0, 0, 0, time.UTC),
			days:     3,
			expected: "2025-02-02 00:00:00 +0000 UTC",
		},
		{
			name:     "zero days",
			input:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			days:     0,
			expected: "2025-04-01 00:00:00 +0000 UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AddDays(tt.input, tt.days)
			if result.String() != tt.expected {
				t.Errorf("AddDays() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestFromUnix(t *testing.T) {
	if got := FromUnix(0); got != nil {
		t.Errorf("FromUnix(0) = %v, want nil", got)
	}
	if got := FromUnix(-5); got != nil {
		t.Errorf("FromUnix(-5) = %v, want nil", got)
	}

	got := FromUnix(1744156800)
	if got == nil {
		t.Fatal("FromUnix() returned nil for a valid timestamp")
	}
	if got.Location() != time.UTC {
		t.Errorf("FromUnix() returned non-UTC: %v", got.Location())
	}
	if got.Unix() != 1744156800 {
		t.Errorf("FromUnix() = %d, want %d", got.Unix(), 1744156800)
	}
}

func TestCoalesce(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	if got := Coalesce(nil, &a, &b); got == nil || !got.Equal(a) {
		t.Errorf("Coalesce() = %v, want %v", got, a)
	}
	if got := Coalesce(nil, nil); got != nil {
		t.Errorf("Coalesce(nil, nil) = %v, want nil", got)
	}
}
