package models

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"github.com/go-martini/martini"
	"github.com/jinzhu/gorm"
	"github.com/lib/pq"
	"gopkg.in/go-playground/validator.v9"
)

type Conference struct {
	gorm.Model
	ProfileID      uint           `json:"profile_id"`
	Name           string         `json:"name" validate:"required"`
	Description    string         `json:"description"`
	Topics         pq.StringArray `gorm:"type:text[]" json:"topics"`
	City           string         `json:"city"`
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Month          int            `json:"month"`
	MaxAttendees   int            `json:"max_attendees"`
	SeatsAvailable int            `json:"seats_available"`
	Thumbnail      string         `json:"thumbnail"`
}

type Conferences []Conference

var validate *validator.Validate

const dateLayout = "2006-01-02"

func applyConferenceDefaults(conference *Conference) {
	if conference.City == "" {
		conference.City = "Default City"
	}
	if len(conference.Topics) == 0 {
		conference.Topics = pq.StringArray{"Default", "Topic"}
	}
	if !conference.StartDate.IsZero() {
		conference.Month = int(conference.StartDate.Month())
	}
	if conference.MaxAttendees > 0 {
		conference.SeatsAvailable = conference.MaxAttendees
	}
}

func CreateConferenceHandler(w http.ResponseWriter, r *http.Request) {
	mr, err := r.MultipartReader()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	var conference Conference
	conference.ProfileID = CurrentProfile.ID
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		switch part.FormName() {
		case "name":
			data, err := ioutil.ReadAll(part)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			conference.Name = string(data)
		case "description":
			data, _ := ioutil.ReadAll(part)
			conference.Description = string(data)
		case "city":
			data, _ := ioutil.ReadAll(part)
			conference.City = string(data)
		case "topics":
			// the form may repeat this field
			data, _ := ioutil.ReadAll(part)
			conference.Topics = append(conference.Topics, string(data))
		case "max_attendees":
			data, _ := ioutil.ReadAll(part)
			maxAttendees, err := strconv.Atoi(string(data))
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			conference.MaxAttendees = maxAttendees
		case "start_date":
			data, _ := ioutil.ReadAll(part)
			startDate, err := time.Parse(dateLayout, string(data))
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			conference.StartDate = startDate
		case "end_date":
			data, _ := ioutil.ReadAll(part)
			endDate, err := time.Parse(dateLayout, string(data))
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			conference.EndDate = endDate
		case "thumbnail":
			file, _ := ioutil.ReadAll(part)
			if file != nil {
				fileName, err := uploadFileToS3(awsSession, file, part.FileName(), binary.Size(file))
				if err != nil {
					http.Error(w, "Could not upload file", http.StatusInternalServerError)
					return
				}
				conference.Thumbnail = generateAWSLink(fileName)
			}
		}
	}

	applyConferenceDefaults(&conference)

	validate = validator.New()
	if err := validate.Struct(conference); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := DB.Create(&conference).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsn, _ := json.Marshal(conference)
	_, _ = w.Write(jsn)
}

func UpdateConferenceHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["conference_id"], 10, 32)

	conference := Conference{}
	DB.First(&conference, id)
	if conference.ID == 0 {
		http.Error(w, fmt.Sprintf("No conference with id: %d", id), http.StatusNotFound)
		return
	}
	if conference.ProfileID != CurrentProfile.ID {
		http.Error(w, "Only the owner can update the conference", http.StatusForbidden)
		return
	}

	// only fields present in the form are touched
	if v := r.FormValue("name"); v != "" {
		conference.Name = v
	}
	if v := r.FormValue("description"); v != "" {
		conference.Description = v
	}
	if v := r.FormValue("city"); v != "" {
		conference.City = v
	}
	if v := r.FormValue("max_attendees"); v != "" {
		maxAttendees, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		conference.MaxAttendees = maxAttendees
	}
	if v := r.FormValue("start_date"); v != "" {
		startDate, err := time.Parse(dateLayout, v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		conference.StartDate = startDate
		conference.Month = int(startDate.Month())
	}
	if v := r.FormValue("end_date"); v != "" {
		endDate, err := time.Parse(dateLayout, v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		conference.EndDate = endDate
	}

	if err := DB.Save(&conference).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	jsn, _ := json.Marshal(conference)
	_, _ = w.Write(jsn)
}

func GetConferencesHandler(w http.ResponseWriter, r *http.Request) {
	conferences := Conferences{}
	DB.Find(&conferences)
	jsonConferences, _ := json.Marshal(conferences)
	fmt.Fprint(w, string(jsonConferences))
}

func GetConferenceHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["conference_id"], 10, 32)

	conference := Conference{}
	DB.First(&conference, id)
	if conference.ID != 0 {
		cf, _ := json.Marshal(conference)
		_, _ = w.Write(cf)
		return
	}
	http.Error(w, fmt.Sprintf("No conference with id: %d", id), http.StatusNotFound)
}

func GetConferencesCreatedHandler(w http.ResponseWriter, r *http.Request) {
	conferences := Conferences{}
	DB.Where("profile_id = ?", CurrentProfile.ID).Find(&conferences)
	jsn, _ := json.Marshal(conferences)
	_, _ = w.Write(jsn)
}
