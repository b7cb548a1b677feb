package models

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-martini/martini"
	"github.com/jinzhu/gorm"
	"gopkg.in/go-playground/validator.v9"
)

// Session belongs to exactly one Conference and is created by the
// conference organizer. Sessions are never updated or deleted.
type Session struct {
	gorm.Model
	ConferenceID  uint      `json:"conference_id"`
	Name          string    `json:"name" validate:"required"`
	Highlights    string    `json:"highlights"`
	Speaker       string    `json:"speaker"`
	TypeOfSession string    `json:"type_of_session" validate:"required,oneof=workshop lecture keynote panel other"`
	Duration      int       `json:"duration" validate:"omitempty,gte=1,lte=1440"`
	Date          time.Time `json:"date"`
	StartTime     *int      `json:"start_time"`
}

type Sessions []Session

// ParseTimeOfDay turns "HH:MM" into minutes past midnight.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func mapRequestToSession(request *http.Request, session *Session) error {
	session.Name = request.FormValue("name")
	session.Highlights = request.FormValue("highlights")
	session.Speaker = request.FormValue("speaker")
	session.TypeOfSession = request.FormValue("type_of_session")

	if v := request.FormValue("duration"); v != "" {
		duration, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		session.Duration = duration
	}
	if v := request.FormValue("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			return err
		}
		session.Date = date
	}
	if v := request.FormValue("start_time"); v != "" {
		startTime, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		session.StartTime = &startTime
	}
	return nil
}

func CreateSessionHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["conference_id"], 10, 32)

	conference := Conference{}
	DB.First(&conference, id)
	if conference.ID == 0 {
		http.Error(w, fmt.Sprintf("No conference with id: %d", id), http.StatusNotFound)
		return
	}
	if conference.ProfileID != CurrentProfile.ID {
		http.Error(w, "Only the conference organizer can create a session", http.StatusForbidden)
		return
	}

	var session Session
	session.ConferenceID = conference.ID
	if err := mapRequestToSession(r, &session); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	validate = validator.New()
	if err := validate.Struct(session); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := DB.Create(&session).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	checkFeaturedSpeaker(conference.ID, session.Speaker)

	jsn, _ := json.Marshal(session)
	_, _ = w.Write(jsn)
}

func GetConferenceSessionsHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["conference_id"], 10, 32)

	sessions := Sessions{}
	DB.Where("conference_id = ?", id).Find(&sessions)
	jsn, _ := json.Marshal(sessions)
	_, _ = w.Write(jsn)
}

func GetConferenceSessionsByTypeHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["conference_id"], 10, 32)

	sessions := Sessions{}
	DB.Where("conference_id = ? AND type_of_session = ?", id, params["type_of_session"]).Find(&sessions)
	jsn, _ := json.Marshal(sessions)
	_, _ = w.Write(jsn)
}

func GetSessionsBySpeakerHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	sessions := Sessions{}
	DB.Where("speaker = ?", params["speaker"]).Find(&sessions)
	jsn, _ := json.Marshal(sessions)
	_, _ = w.Write(jsn)
}

func GetSessionsByNameHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	sessions := Sessions{}
	DB.Where("name = ?", params["name"]).Find(&sessions)
	jsn, _ := json.Marshal(sessions)
	_, _ = w.Write(jsn)
}

func GetSessionsByHighlightsHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	sessions := Sessions{}
	DB.Where("highlights LIKE ?", "%"+params["highlights"]+"%").Find(&sessions)
	jsn, _ := json.Marshal(sessions)
	_, _ = w.Write(jsn)
}
