package models

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyProfileUpdate(t *testing.T) {
	t.Parallel()

	request := func(values url.Values) *Profile {
		r := httptest.NewRequest("PUT", "/", strings.NewReader(values.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		profile := &Profile{Name: "Old Name", Email: "old@example.com"}
		applyProfileUpdate(profile, r)
		return profile
	}

	t.Run("updates the display name", func(t *testing.T) {
		t.Parallel()
		profile := request(url.Values{"name": {"New Name"}})
		assert.Equal(t, "New Name", profile.Name)
		assert.Equal(t, "old@example.com", profile.Email)
	})

	t.Run("leaves fields untouched when absent", func(t *testing.T) {
		t.Parallel()
		profile := request(url.Values{})
		assert.Equal(t, "Old Name", profile.Name)
	})
}
