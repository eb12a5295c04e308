package payroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		month   string
		want    int
		wantErr bool
	}{
		{"2025-01", 31, false},
		{"2025-02", 28, false},
		{"2024-02", 29, false}, // leap year
		{"2025-04", 30, false},
		{"2025-12", 31, false},
		{"2025-13", 0, true},
		{"June 2025", 0, true},
		{"2025-6", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := DaysInMonth(tt.month)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidMonth, "month %q", tt.month)
			continue
		}
		assert.NoError(t, err, "month %q", tt.month)
		assert.Equal(t, tt.want, got, "month %q", tt.month)
	}
}

func TestParseMonthFirstDay(t *testing.T) {
	parsed, err := ParseMonth("2025-06")
	assert.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, "June", parsed.Month().String())
	assert.Equal(t, 1, parsed.Day())
}
