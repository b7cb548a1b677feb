package models

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jinzhu/gorm"
)

// The original datastore allows at most one inequality predicate per
// query, so "not of type X and starting before T" cannot be asked in a
// single request. The workaround runs the type exclusion remotely and
// filters start times locally over the materialized result. Postgres
// could run the compound predicate in one query, but the two-phase
// contract is what callers and tests rely on, so it stays.

// FilterSessionsBefore keeps sessions starting strictly before boundary
// (minutes past midnight), preserving the input order. Sessions without
// a start time are excluded.
func FilterSessionsBefore(sessions Sessions, boundary int) Sessions {
	filtered := Sessions{}
	for _, session := range sessions {
		if session.StartTime != nil && *session.StartTime < boundary {
			filtered = append(filtered, session)
		}
	}
	return filtered
}

// SessionsByTypeAndStartTime returns sessions that are not of
// excludedType and start before boundary. conferenceID 0 means all
// conferences. Store errors propagate unmodified.
func SessionsByTypeAndStartTime(db *gorm.DB, conferenceID uint, excludedType string, boundary int) (Sessions, error) {
	query := db.Where("type_of_session <> ?", excludedType)
	if conferenceID != 0 {
		query = query.Where("conference_id = ?", conferenceID)
	}

	var sessions Sessions
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}

	return FilterSessionsBefore(sessions, boundary), nil
}

func GetSessionsByTypeAndStartTimeHandler(w http.ResponseWriter, r *http.Request) {
	keys := r.URL.Query()

	boundary, err := ParseTimeOfDay(keys.Get("start_time"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var conferenceID uint
	if v := keys.Get("conference_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		conferenceID = uint(id)
	}

	sessions, err := SessionsByTypeAndStartTime(DB, conferenceID, keys.Get("type_of_session"), boundary)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	jsn, _ := json.Marshal(sessions)
	_, _ = w.Write(jsn)
}
