package models

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gopkg.in/go-playground/validator.v9"
)

func TestApplyConferenceDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills city and topics when missing", func(t *testing.T) {
		t.Parallel()
		conference := Conference{Name: "GopherCon"}
		applyConferenceDefaults(&conference)
		assert.Equal(t, "Default City", conference.City)
		assert.Equal(t, pq.StringArray{"Default", "Topic"}, conference.Topics)
		assert.Equal(t, 0, conference.Month)
		assert.Equal(t, 0, conference.SeatsAvailable)
	})

	t.Run("keeps provided values", func(t *testing.T) {
		t.Parallel()
		conference := Conference{
			Name:   "GopherCon",
			City:   "Berlin",
			Topics: pq.StringArray{"Go"},
		}
		applyConferenceDefaults(&conference)
		assert.Equal(t, "Berlin", conference.City)
		assert.Equal(t, pq.StringArray{"Go"}, conference.Topics)
	})

	t.Run("derives month from the start date", func(t *testing.T) {
		t.Parallel()
		conference := Conference{
			Name:      "GopherCon",
			StartDate: time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC),
		}
		applyConferenceDefaults(&conference)
		assert.Equal(t, 11, conference.Month)
	})

	t.Run("seats start out equal to max attendees", func(t *testing.T) {
		t.Parallel()
		conference := Conference{Name: "GopherCon", MaxAttendees: 120}
		applyConferenceDefaults(&conference)
		assert.Equal(t, 120, conference.SeatsAvailable)
	})
}

func TestConferenceValidation(t *testing.T) {
	t.Parallel()
	v := validator.New()

	t.Run("name is required", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, v.Struct(Conference{}))
		assert.NoError(t, v.Struct(Conference{Name: "GopherCon"}))
	})
}
