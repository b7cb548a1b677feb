package models

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-martini/martini"
	"github.com/jinzhu/gorm"
)

// WishlistEntry marks a session the profile wants to attend.
type WishlistEntry struct {
	gorm.Model
	ProfileID uint `json:"profile_id"`
	SessionID uint `json:"session_id"`
}

type BooleanMessage struct {
	Data bool `json:"data"`
}

func AddSessionToWishlistHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["session_id"], 10, 32)

	session := Session{}
	DB.First(&session, id)
	if session.ID == 0 {
		http.Error(w, fmt.Sprintf("No session with id: %d", id), http.StatusNotFound)
		return
	}

	entry := WishlistEntry{}
	DB.Find(&entry, "profile_id = ? AND session_id = ?", CurrentProfile.ID, session.ID)
	if entry.ID != 0 {
		http.Error(w, "Session already saved to wishlist", http.StatusBadRequest)
		return
	}

	entry = WishlistEntry{ProfileID: CurrentProfile.ID, SessionID: session.ID}
	if err := DB.Create(&entry).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsn, _ := json.Marshal(session)
	_, _ = w.Write(jsn)
}

func GetWishlistSessionsHandler(w http.ResponseWriter, r *http.Request) {
	var entries []WishlistEntry
	DB.Where("profile_id = ?", CurrentProfile.ID).Find(&entries)

	sessions := Sessions{}
	if len(entries) > 0 {
		ids := make([]uint, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.SessionID)
		}
		DB.Where("id IN (?)", ids).Find(&sessions)
	}

	jsn, _ := json.Marshal(sessions)
	_, _ = w.Write(jsn)
}

func DeleteSessionFromWishlistHandler(w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["session_id"], 10, 32)

	entry := WishlistEntry{}
	DB.Find(&entry, "profile_id = ? AND session_id = ?", CurrentProfile.ID, id)

	removed := false
	if entry.ID != 0 {
		DB.Delete(&entry)
		removed = true
	}

	jsn, _ := json.Marshal(BooleanMessage{Data: removed})
	_, _ = w.Write(jsn)
}
