package dateutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2024, 6, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestIsWeekend(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  bool
	}{
		{"Saturday is weekend", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"Sunday is weekend", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), true},
		{"Monday is not weekend", time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), false},
		{"Friday is not weekend", time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsWeekend(tt.input)

			if result != tt.want {
				t.Errorf("IsWeekend(%v) = %v, want %v",
					tt.input.Format("2006-01-02 Mon"), result, tt.want)
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Mid June",
			input:     time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Leap February",
			input:     time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "December rolls into next year correctly",
			input:     time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := MonthStart(tt.input)
			end := MonthEnd(tt.input)

			if !start.Equal(tt.wantStart) {
				t.Errorf("MonthStart(%v) = %v, want %v", tt.input, start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("MonthEnd(%v) = %v, want %v", tt.input, end, tt.wantEnd)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	input := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	if got := FormatDate(input); got != "2024-06-01" {
		t.Errorf("FormatDate(%v) = %v, want 2024-06-01", input, got)
	}
	if got := FormatMonth(input); got != "2024-06" {
		t.Errorf("FormatMonth(%v) = %v, want 2024-06", input, got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"ISO format YYYY-MM-DD",
			"2024-06-01",
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			false,
		},
		{
			"ISO with time",
			"2024-06-01T10:30:00",
			time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC),
			false,
		},
		{
			"RFC3339",
			"2024-06-01T10:30:00Z",
			time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC),
			false,
		},
		{
			"SQL timestamp",
			"2024-06-01 10:30:00",
			time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC),
			false,
		},
		{
			"Garbage is rejected",
			"not-a-date",
			time.Time{},
			true,
		},
		{
			"Empty string is rejected",
			"",
			time.Time{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseDate(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}

			if !tt.wantErr && !result.Equal(tt.want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.input, result, tt.want)
			}
		})
	}
}
