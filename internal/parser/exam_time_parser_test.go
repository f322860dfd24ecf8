package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference "now": March 15th 2023, 12:30 local
var testNow = time.Date(2023, 3, 15, 12, 30, 0, 0, time.UTC)

func TestParseExamDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"Day-Month", "20-Apr", time.Date(2023, 4, 20, 0, 0, 0, 0, time.UTC)},
		{"Day/Month", "20/APR", time.Date(2023, 4, 20, 0, 0, 0, 0, time.UTC)},
		{"Month/Day", "Apr/20", time.Date(2023, 4, 20, 0, 0, 0, 0, time.UTC)},
		{"Month/Day/Year", "Dec/11/2022", time.Date(2022, 12, 11, 0, 0, 0, 0, time.UTC)},
		{"Year/Month/Day", "2023/04/18", time.Date(2023, 4, 18, 0, 0, 0, 0, time.UTC)},
		{"Month/Day/Year numeric", "04/18/2023", time.Date(2023, 4, 18, 0, 0, 0, 0, time.UTC)},
		{"ISO", "2023-04-20", time.Date(2023, 4, 20, 0, 0, 0, 0, time.UTC)},
		{"Surrounding spaces", "  2023-04-20 ", time.Date(2023, 4, 20, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseExamDate(tt.input, testNow)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExamDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "TBA", "April 20th", "4-20", "2023/13/01", "29-Feb", "20-Apr-2023"} {
		_, ok := ParseExamDate(input, testNow)
		assert.False(t, ok, input)
	}
}

func TestParseExamDate_LeapDayUsesCurrentYear(t *testing.T) {
	leapNow := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	got, ok := ParseExamDate("29-Feb", leapNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got)
}

func TestParseExamTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHour int
		wantMin  int
	}{
		{"Compact PM", "2:00PM", 14, 0},
		{"Spaced AM", "9:30 AM", 9, 30},
		{"Lowercase", "7:00 pm", 19, 0},
		{"Seconds digit", "2:000PM", 14, 0},
		{"24 hour", "14:00", 14, 0},
		{"Noon", "12:00 PM", 12, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseExamTime(tt.input, testNow)
			require.True(t, ok)
			assert.Equal(t, tt.wantHour, got.Hour())
			assert.Equal(t, tt.wantMin, got.Minute())
		})
	}
}

func TestParseExamTime_NextOccurrence(t *testing.T) {
	// 9:00 already passed at 12:30, so it rolls to tomorrow
	morning, ok := ParseExamTime("9:00 AM", testNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 3, 16, 9, 0, 0, 0, time.UTC), morning)

	// 2PM is still ahead today
	afternoon, ok := ParseExamTime("2:00 PM", testNow)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 3, 15, 14, 0, 0, 0, time.UTC), afternoon)
}

func TestParseExamTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "noon", "25:00", "13:00 PM", "9AM", "9:0"} {
		_, ok := ParseExamTime(input, testNow)
		assert.False(t, ok, input)
	}
}

func TestFormatExamDate(t *testing.T) {
	assert.Equal(t, "Thu Apr 20 2023", FormatExamDate("2023-04-20", testNow))
	assert.Equal(t, "Thu Apr 20 2023", FormatExamDate("20-Apr", testNow))
	assert.Equal(t, "TBA", FormatExamDate("TBA", testNow), "unparseable dates are shown as-is")
	assert.Equal(t, " TBA ", FormatExamDate(" TBA ", testNow))
}

func TestFormatExamTime(t *testing.T) {
	assert.Equal(t, "9:00", FormatExamTime("9:00 AM", testNow))
	assert.Equal(t, "14:05", FormatExamTime("2:05PM", testNow))
	assert.Equal(t, "19:00", FormatExamTime("19:00", testNow))
	assert.Equal(t, "evening", FormatExamTime("evening", testNow), "unparseable times are shown as-is")
}
