package models

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-martini/martini"
	"github.com/jinzhu/gorm"
)

// Registration holds a seat for a profile at a conference.
type Registration struct {
	gorm.Model
	ProfileID    uint `json:"profile_id"`
	ConferenceID uint `json:"conference_id"`
}

func RegisterForConferenceHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["conference_id"], 10, 32)

	// seat accounting and the registration row move together; the row
	// lock keeps two concurrent registrations from both taking the
	// last seat
	tx := DB.Begin()

	conference := Conference{}
	tx.Set("gorm:query_option", "FOR UPDATE").First(&conference, id)
	if conference.ID == 0 {
		tx.Rollback()
		http.Error(w, fmt.Sprintf("No conference with id: %d", id), http.StatusNotFound)
		return
	}

	registration := Registration{}
	tx.Find(&registration, "profile_id = ? AND conference_id = ?", CurrentProfile.ID, conference.ID)
	if registration.ID != 0 {
		tx.Rollback()
		http.Error(w, "You have already registered for this conference", http.StatusConflict)
		return
	}

	if conference.SeatsAvailable <= 0 {
		tx.Rollback()
		http.Error(w, "There are no seats available", http.StatusConflict)
		return
	}

	registration = Registration{ProfileID: CurrentProfile.ID, ConferenceID: conference.ID}
	if err := tx.Create(&registration).Error; err != nil {
		tx.Rollback()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	conference.SeatsAvailable--
	if err := tx.Save(&conference).Error; err != nil {
		tx.Rollback()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	RefreshAnnouncement(DB)

	jsn, _ := json.Marshal(BooleanMessage{Data: true})
	_, _ = w.Write(jsn)
}

func UnregisterFromConferenceHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["conference_id"], 10, 32)

	tx := DB.Begin()

	conference := Conference{}
	tx.Set("gorm:query_option", "FOR UPDATE").First(&conference, id)
	if conference.ID == 0 {
		tx.Rollback()
		http.Error(w, fmt.Sprintf("No conference with id: %d", id), http.StatusNotFound)
		return
	}

	registration := Registration{}
	tx.Find(&registration, "profile_id = ? AND conference_id = ?", CurrentProfile.ID, conference.ID)
	if registration.ID == 0 {
		tx.Rollback()
		jsn, _ := json.Marshal(BooleanMessage{Data: false})
		_, _ = w.Write(jsn)
		return
	}

	if err := tx.Delete(&registration).Error; err != nil {
		tx.Rollback()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	conference.SeatsAvailable++
	if err := tx.Save(&conference).Error; err != nil {
		tx.Rollback()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	RefreshAnnouncement(DB)

	jsn, _ := json.Marshal(BooleanMessage{Data: true})
	_, _ = w.Write(jsn)
}

func GetConferencesToAttendHandler(w http.ResponseWriter, r *http.Request) {
	var registrations []Registration
	DB.Where("profile_id = ?", CurrentProfile.ID).Find(&registrations)

	conferences := Conferences{}
	if len(registrations) > 0 {
		ids := make([]uint, 0, len(registrations))
		for _, registration := range registrations {
			ids = append(ids, registration.ConferenceID)
		}
		DB.Where("id IN (?)", ids).Find(&conferences)
	}

	jsn, _ := json.Marshal(conferences)
	_, _ = w.Write(jsn)
}
