package models

import (
	"encoding/json"
	"net/http"

	"github.com/jinzhu/gorm"
)

type Profile struct {
	gorm.Model
	GoogleID       string `json:"google_id"`
	Name           string `json:"name"`
	Email          string `gorm:"type:varchar(100);unique_index" json:"email"`
	TemporaryToken string `json:"temporary_token"`
	PublicToken    string `json:"public_token"`
	AccessToken    string `json:"access_token"`
	AvatarUrl      string `json:"avatar_url"`
}

// only fields present in the form are touched
func applyProfileUpdate(profile *Profile, r *http.Request) {
	if v := r.FormValue("name"); v != "" {
		profile.Name = v
	}
}

func UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	profile := CurrentProfile
	if profile.ID == 0 {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	applyProfileUpdate(&profile, r)

	if err := DB.Save(&profile).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	SetCurrentProfile(&profile)

	jsn, _ := json.Marshal(profile)
	_, _ = w.Write(jsn)
}
