package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/examtt/internal/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Initialize(filepath.Join(t.TempDir(), "examtt.db")))
	t.Cleanup(func() { _ = Close() })
}

func sampleTimings() []models.ExamTiming {
	return []models.ExamTiming{
		{Course: "CSC108H1F", Section: "ALL", Split: "A-K", Location: "EX100", Date: "2023-04-20", Start: "9:00 AM", End: "12:00 PM"},
		{Course: "CSC108H1F", Section: "ALL", Split: "L-Z", Location: "EX200", Date: "2023-04-20", Start: "9:00 AM", End: "12:00 PM"},
		{Course: "MAT137Y1Y", Section: "L5101", Split: "", Location: "BN2S", Date: "TBA"},
	}
}

func TestImportSession_StoresTimingsInOrder(t *testing.T) {
	setupTestDB(t)

	session, err := ImportSession(ImportSessionRequest{Code: "20231", Name: "Winter 2023", Source: "exams_20231.json", Timings: sampleTimings()})
	require.NoError(t, err)
	assert.Equal(t, "20231", session.Code)
	assert.Equal(t, "Winter 2023", session.Name)

	timings, err := GetTimings("20231")
	require.NoError(t, err)
	require.Len(t, timings, 3)
	assert.Equal(t, "EX100", timings[0].Location)
	assert.Equal(t, "EX200", timings[1].Location)
	assert.Equal(t, "BN2S", timings[2].Location)
	for i, timing := range timings {
		assert.Equal(t, i, timing.Position)
		assert.Equal(t, session.ID, timing.SessionID)
	}
}

func TestImportSession_ReplacesWholesale(t *testing.T) {
	setupTestDB(t)

	_, err := ImportSession(ImportSessionRequest{Code: "20231", Timings: sampleTimings()})
	require.NoError(t, err)

	replaced, err := ImportSession(ImportSessionRequest{Code: "20231", Name: "Winter", Timings: []models.ExamTiming{
		{Course: "STA247H1S", Section: "ALL", Split: "S"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "Winter", replaced.Name)

	timings, err := GetTimings("20231")
	require.NoError(t, err)
	require.Len(t, timings, 1)
	assert.Equal(t, "STA247H1S", timings[0].Course)

	sessions, err := GetSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	count, err := CountTimings(replaced.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestImportSession_RequiresCode(t *testing.T) {
	setupTestDB(t)

	_, err := ImportSession(ImportSessionRequest{Code: "  "})
	assert.Error(t, err)
}

func TestGetSessionByCode_NotFound(t *testing.T) {
	setupTestDB(t)

	_, err := GetSessionByCode("19999")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = GetTimings("19999")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestActiveSession(t *testing.T) {
	setupTestDB(t)

	active, err := GetActiveSession()
	require.NoError(t, err)
	assert.Equal(t, "", active)

	assert.ErrorIs(t, SetActiveSession("20231"), ErrSessionNotFound)

	_, err = ImportSession(ImportSessionRequest{Code: "20231", Timings: sampleTimings()})
	require.NoError(t, err)
	_, err = ImportSession(ImportSessionRequest{Code: "20229"})
	require.NoError(t, err)

	require.NoError(t, SetActiveSession("20231"))
	require.NoError(t, SetActiveSession("20229"))
	active, err = GetActiveSession()
	require.NoError(t, err)
	assert.Equal(t, "20229", active)

	require.NoError(t, DeleteSession("20229"))
	active, err = GetActiveSession()
	require.NoError(t, err)
	assert.Equal(t, "", active, "deleting the active session clears it")

	sessions, err := GetSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "20231", sessions[0].Code)
}

func TestDecisions(t *testing.T) {
	setupTestDB(t)

	first, err := AddDecision("csc108h1f", "")
	require.NoError(t, err)
	assert.Equal(t, "CSC108H1F", first.Course)

	second, err := AddDecision("MAT137Y1Y", "l5101")
	require.NoError(t, err)
	assert.Equal(t, "L5101", second.Section)
	assert.Greater(t, second.Position, first.Position)

	_, err = AddDecision("CSC108H1F", "")
	assert.Error(t, err, "duplicates are rejected")

	_, err = AddDecision("  ", "")
	assert.Error(t, err)

	decisions, err := GetDecisions()
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.Equal(t, "CSC108H1F", decisions[0].Course)
	assert.Equal(t, "MAT137Y1Y", decisions[1].Course)

	removed, err := RemoveDecision(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "CSC108H1F", removed.Course)

	_, err = RemoveDecision(first.ID)
	assert.Error(t, err)

	cleared, err := ClearDecisions()
	require.NoError(t, err)
	assert.EqualValues(t, 1, cleared)
}

func TestReplaceDecisions(t *testing.T) {
	setupTestDB(t)

	_, err := AddDecision("CSC108H1F", "")
	require.NoError(t, err)

	require.NoError(t, ReplaceDecisions([]models.Decision{
		{Course: "sta247h1s"},
		{Course: ""},
		{Course: "MAT137Y1Y", Section: "L0101"},
	}))

	decisions, err := GetDecisions()
	require.NoError(t, err)
	require.Len(t, decisions, 2)
	assert.Equal(t, "STA247H1S", decisions[0].Course)
	assert.Equal(t, "MAT137Y1Y", decisions[1].Course)
	assert.Equal(t, "L0101", decisions[1].Section)
}

func TestSurname(t *testing.T) {
	setupTestDB(t)

	surname, err := GetSurname()
	require.NoError(t, err)
	assert.Equal(t, "", surname)

	require.NoError(t, SetSurname(" Smith "))
	surname, err = GetSurname()
	require.NoError(t, err)
	assert.Equal(t, " Smith ", surname, "surname is stored untrimmed")

	require.NoError(t, SetSurname("Nguyen"))
	surname, err = GetSurname()
	require.NoError(t, err)
	assert.Equal(t, "Nguyen", surname)
}

func TestStore(t *testing.T) {
	setupTestDB(t)

	_, err := ImportSession(ImportSessionRequest{Code: "20231", Timings: sampleTimings()})
	require.NoError(t, err)

	var store Store
	sessions, err := store.Sessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	session, err := store.Session("20231")
	require.NoError(t, err)
	assert.Equal(t, "20231", session.Name, "name defaults to the code")

	timings, err := store.Timings("20231")
	require.NoError(t, err)
	assert.Len(t, timings, 3)
}
