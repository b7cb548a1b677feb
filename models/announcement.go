package models

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/jinzhu/gorm"
)

// In-process stand-in for the memcache the service used to lean on.
// Writers go through RefreshAnnouncement / checkFeaturedSpeaker, which
// also fan the new value out over the websocket hub.

type StringMessage struct {
	Data string `json:"data"`
}

type FeaturedSpeaker struct {
	ConferenceID uint     `json:"conference_id"`
	Speaker      string   `json:"speaker"`
	SessionNames []string `json:"session_names"`
}

var cache = struct {
	sync.RWMutex
	announcement    string
	featuredSpeaker FeaturedSpeaker
}{}

const announcementText = "Last chance to attend!"

// RefreshAnnouncement recomputes the sold-out-soon announcement from
// conferences with 1..5 seats left and returns it. An empty string
// clears the cached entry.
func RefreshAnnouncement(db *gorm.DB) string {
	var conferences Conferences
	db.Where("seats_available > 0 AND seats_available <= 5").Find(&conferences)

	announcement := ""
	if len(conferences) > 0 {
		announcement = announcementText
	}

	cache.Lock()
	changed := cache.announcement != announcement
	cache.announcement = announcement
	cache.Unlock()

	if changed && announcement != "" {
		notify(0, "announcement", StringMessage{Data: announcement})
	}
	return announcement
}

func Announcement() string {
	cache.RLock()
	defer cache.RUnlock()
	return cache.announcement
}

// checkFeaturedSpeaker promotes a speaker with more than one session in
// the conference. Called after every session create.
func checkFeaturedSpeaker(conferenceID uint, speaker string) {
	if speaker == "" {
		return
	}

	var sessions Sessions
	DB.Where("conference_id = ? AND speaker = ?", conferenceID, speaker).Find(&sessions)
	if len(sessions) <= 1 {
		return
	}

	names := make([]string, 0, len(sessions))
	for _, session := range sessions {
		names = append(names, session.Name)
	}
	featured := FeaturedSpeaker{ConferenceID: conferenceID, Speaker: speaker, SessionNames: names}

	cache.Lock()
	cache.featuredSpeaker = featured
	cache.Unlock()

	notify(conferenceID, "featured_speaker", featured)
}

func CurrentFeaturedSpeaker() FeaturedSpeaker {
	cache.RLock()
	defer cache.RUnlock()
	return cache.featuredSpeaker
}

func GetAnnouncementHandler(w http.ResponseWriter, r *http.Request) {
	announcement := RefreshAnnouncement(DB)
	jsn, _ := json.Marshal(StringMessage{Data: announcement})
	_, _ = w.Write(jsn)
}

func GetFeaturedSpeakerHandler(w http.ResponseWriter, r *http.Request) {
	featured := CurrentFeaturedSpeaker()
	jsn, _ := json.Marshal(StringMessage{Data: featured.Speaker})
	_, _ = w.Write(jsn)
}
