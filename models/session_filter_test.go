package models_test

import (
	"testing"

	"confcentral/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) int {
	t.Helper()
	minutes, err := models.ParseTimeOfDay(s)
	require.NoError(t, err)
	return minutes
}

func timeOfDay(t *testing.T, s string) *int {
	t.Helper()
	minutes := mustTime(t, s)
	return &minutes
}

// emulates phase one of the compound filter: the store runs the type
// exclusion, the time predicate is applied locally afterwards.
func excludeType(sessions models.Sessions, typeOfSession string) models.Sessions {
	remaining := models.Sessions{}
	for _, session := range sessions {
		if session.TypeOfSession != typeOfSession {
			remaining = append(remaining, session)
		}
	}
	return remaining
}

func TestFilterSessionsBefore(t *testing.T) {
	t.Parallel()

	t.Run("keeps sessions starting strictly before the boundary", func(t *testing.T) {
		t.Parallel()
		sessions := models.Sessions{
			{Name: "early", StartTime: timeOfDay(t, "08:00")},
			{Name: "late", StartTime: timeOfDay(t, "11:00")},
		}
		filtered := models.FilterSessionsBefore(sessions, mustTime(t, "10:00"))
		require.Len(t, filtered, 1)
		assert.Equal(t, "early", filtered[0].Name)
	})

	t.Run("excludes sessions without a start time", func(t *testing.T) {
		t.Parallel()
		sessions := models.Sessions{
			{Name: "unscheduled", TypeOfSession: "lecture"},
			{Name: "scheduled", TypeOfSession: "lecture", StartTime: timeOfDay(t, "08:00")},
		}
		filtered := models.FilterSessionsBefore(sessions, mustTime(t, "10:00"))
		require.Len(t, filtered, 1)
		assert.Equal(t, "scheduled", filtered[0].Name)
	})

	t.Run("excludes a session starting exactly at the boundary", func(t *testing.T) {
		t.Parallel()
		sessions := models.Sessions{
			{Name: "on the dot", StartTime: timeOfDay(t, "09:00")},
		}
		filtered := models.FilterSessionsBefore(sessions, mustTime(t, "09:00"))
		assert.Empty(t, filtered)
	})

	t.Run("preserves input order", func(t *testing.T) {
		t.Parallel()
		sessions := models.Sessions{
			{Name: "c", StartTime: timeOfDay(t, "09:30")},
			{Name: "a", StartTime: timeOfDay(t, "08:00")},
			{Name: "b", StartTime: timeOfDay(t, "09:00")},
		}
		filtered := models.FilterSessionsBefore(sessions, mustTime(t, "10:00"))
		require.Len(t, filtered, 3)
		assert.Equal(t, "c", filtered[0].Name)
		assert.Equal(t, "a", filtered[1].Name)
		assert.Equal(t, "b", filtered[2].Name)
	})

	t.Run("is idempotent for identical arguments", func(t *testing.T) {
		t.Parallel()
		sessions := models.Sessions{
			{Name: "a", StartTime: timeOfDay(t, "08:00")},
			{Name: "b", StartTime: timeOfDay(t, "12:00")},
		}
		first := models.FilterSessionsBefore(sessions, mustTime(t, "10:00"))
		second := models.FilterSessionsBefore(sessions, mustTime(t, "10:00"))
		assert.Equal(t, first, second)
	})

	t.Run("leaves the input untouched", func(t *testing.T) {
		t.Parallel()
		sessions := models.Sessions{
			{Name: "a", StartTime: timeOfDay(t, "08:00")},
			{Name: "b", StartTime: timeOfDay(t, "12:00")},
		}
		_ = models.FilterSessionsBefore(sessions, mustTime(t, "10:00"))
		require.Len(t, sessions, 2)
	})

	t.Run("empty input yields an empty sequence, not an error", func(t *testing.T) {
		t.Parallel()
		filtered := models.FilterSessionsBefore(models.Sessions{}, mustTime(t, "10:00"))
		assert.NotNil(t, filtered)
		assert.Empty(t, filtered)
	})
}

func TestCompoundFilterTwoPhases(t *testing.T) {
	t.Parallel()

	t.Run("type exclusion then local time filter", func(t *testing.T) {
		t.Parallel()
		sessions := models.Sessions{
			{Name: "w", TypeOfSession: "workshop", StartTime: timeOfDay(t, "08:00")},
			{Name: "l1", TypeOfSession: "lecture", StartTime: timeOfDay(t, "09:30")},
			{Name: "l2", TypeOfSession: "lecture", StartTime: timeOfDay(t, "11:00")},
		}

		remaining := excludeType(sessions, "workshop")
		filtered := models.FilterSessionsBefore(remaining, mustTime(t, "10:00"))

		require.Len(t, filtered, 1)
		assert.Equal(t, "l1", filtered[0].Name)
		assert.Equal(t, "lecture", filtered[0].TypeOfSession)
	})

	t.Run("excluded type loses even an early start", func(t *testing.T) {
		t.Parallel()
		sessions := models.Sessions{
			{Name: "w", TypeOfSession: "workshop", StartTime: timeOfDay(t, "08:00")},
		}
		remaining := excludeType(sessions, "workshop")
		filtered := models.FilterSessionsBefore(remaining, mustTime(t, "10:00"))
		assert.Empty(t, filtered)
	})

	t.Run("boundary excluding everything yields empty", func(t *testing.T) {
		t.Parallel()
		sessions := models.Sessions{
			{Name: "l", TypeOfSession: "lecture", StartTime: timeOfDay(t, "09:00")},
		}
		remaining := excludeType(sessions, "workshop")
		filtered := models.FilterSessionsBefore(remaining, mustTime(t, "09:00"))
		assert.Empty(t, filtered)
	})
}
