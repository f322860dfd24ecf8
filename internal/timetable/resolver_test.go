package timetable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/examtt/internal/models"
)

var testNow = time.Date(2023, 3, 15, 12, 30, 0, 0, time.UTC)

func TestFindTiming_AllSectionsMatchesBlankSection(t *testing.T) {
	timings := []models.ExamTiming{
		{Course: "CSC108H1F", Section: "ALL", Split: "A-Z", Location: "EX100"},
	}

	// "A-Z" compares "A" <= surname[1:] <= "Z"
	got, ok := FindTiming(timings, models.Decision{Course: "CSC108H1F"}, "Adams")
	require.True(t, ok)
	assert.Equal(t, "EX100", got.Location)

	got, ok = FindTiming(timings, models.Decision{Course: "CSC108H1F", Section: "L0101"}, "Adams")
	require.True(t, ok)
	assert.Equal(t, "EX100", got.Location)
}

func TestFindTiming_SectionSpecific(t *testing.T) {
	timings := []models.ExamTiming{
		{Course: "MAT137Y1Y", Section: "L0101", Split: "A-Z", Location: "first"},
		{Course: "MAT137Y1Y", Section: "L5101", Split: "A-Z", Location: "second"},
	}

	got, ok := FindTiming(timings, models.Decision{Course: "MAT137Y1Y", Section: "L5101"}, "Adams")
	require.True(t, ok)
	assert.Equal(t, "second", got.Location)

	_, ok = FindTiming(timings, models.Decision{Course: "MAT137Y1Y"}, "Adams")
	assert.False(t, ok, "blank section only matches ALL rows")
}

func TestFindTiming_FirstMatchWins(t *testing.T) {
	timings := []models.ExamTiming{
		{Course: "CSC108H1F", Section: "ALL", Split: "SM", Location: "first"},
		{Course: "CSC108H1F", Section: "ALL", Split: "S", Location: "second"},
	}

	got, ok := FindTiming(timings, models.Decision{Course: "CSC108H1F"}, "smith")
	require.True(t, ok)
	assert.Equal(t, "first", got.Location)

	got, ok = FindTiming(timings, models.Decision{Course: "CSC108H1F"}, "Stone")
	require.True(t, ok)
	assert.Equal(t, "second", got.Location)
}

func TestFindTiming_NoMatch(t *testing.T) {
	timings := []models.ExamTiming{
		{Course: "CSC108H1F", Section: "ALL", Split: "", Location: "no split"},
		{Course: "CSC148H1S", Section: "ALL", Split: "SM", Location: "other course"},
	}

	_, ok := FindTiming(timings, models.Decision{Course: "CSC108H1F"}, "Smith")
	assert.False(t, ok, "empty split never matches")

	_, ok = FindTiming(timings, models.Decision{Course: "csc148h1s"}, "Smith")
	assert.False(t, ok, "course is compared exactly")

	_, ok = FindTiming(nil, models.Decision{Course: "CSC108H1F"}, "Smith")
	assert.False(t, ok)
}

func TestResolve_KeepsDecisionOrderAndSkipsMisses(t *testing.T) {
	timings := []models.ExamTiming{
		{Course: "STA247H1S", Section: "ALL", Split: "S", Location: "sta"},
		{Course: "CSC108H1F", Section: "ALL", Split: "S", Location: "csc"},
	}
	decisions := []models.Decision{
		{Course: "CSC108H1F"},
		{Course: "MAT137Y1Y"},
		{Course: "STA247H1S"},
	}

	got := Resolve(timings, decisions, "Smith")
	require.Len(t, got, 2)
	assert.Equal(t, "csc", got[0].Location)
	assert.Equal(t, "sta", got[1].Location)

	assert.Empty(t, Resolve(timings, nil, "Smith"))
}

func TestResolve_ReturnsFreshSlice(t *testing.T) {
	timings := []models.ExamTiming{
		{Course: "CSC108H1F", Section: "ALL", Split: "S", Location: "EX100"},
	}
	decisions := []models.Decision{{Course: "CSC108H1F"}}

	got := Resolve(timings, decisions, "Smith")
	require.Len(t, got, 1)
	got[0].Location = "changed"

	assert.Equal(t, "EX100", timings[0].Location)
}

func TestLookup_Idempotent(t *testing.T) {
	timings := []models.ExamTiming{
		{Course: "A", Section: "ALL", Split: "S", Date: "2023-04-20", Start: "9:00 AM"},
		{Course: "B", Section: "ALL", Split: "S", Date: "TBA", Start: "2:00 PM"},
		{Course: "C", Section: "ALL", Split: "S", Date: "2023-04-18", Start: "7:00 PM"},
	}
	decisions := []models.Decision{{Course: "A"}, {Course: "B"}, {Course: "C"}}

	first := Lookup(timings, decisions, "Smith", testNow)
	second := Lookup(timings, decisions, "Smith", testNow)

	assert.Equal(t, first, second)
	require.Len(t, first, 3)
	assert.Equal(t, []string{"B", "C", "A"}, courses(first))
}

func TestMatcher_AgreesWithLookup(t *testing.T) {
	timings := []models.ExamTiming{
		{Course: "A", Section: "ALL", Split: "A-L, N-Z", Date: "2023-04-20"},
		{Course: "A", Section: "ALL", Split: "SM", Date: "2023-04-21"},
		{Course: "B", Section: "L0101", Split: "S", Date: "2023-04-19"},
		{Course: "C", Section: "ALL", Split: "A-K", Date: "2023-04-22"},
	}
	decisions := []models.Decision{{Course: "A"}, {Course: "B", Section: "L0101"}, {Course: "C"}}

	matcher := NewMatcher()
	for _, surname := range []string{"Smith", "Adams", "abc", "Brown", ""} {
		assert.Equal(t,
			Lookup(timings, decisions, surname, testNow),
			matcher.Lookup(timings, decisions, surname, testNow),
			surname)
	}

	// cached split is reused
	assert.Equal(t, matcher.Split("SM"), matcher.Split("SM"))
}

func courses(timings []models.ExamTiming) []string {
	out := make([]string, 0, len(timings))
	for _, timing := range timings {
		out = append(out, timing.Course)
	}
	return out
}
