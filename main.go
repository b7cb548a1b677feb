package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"confcentral/models"

	"github.com/go-martini/martini"
	"github.com/gorilla/websocket"
	"github.com/jinzhu/gorm"
)

var (
	timeout = time.Duration(5 * time.Second)
	client  = http.Client{
		Timeout: timeout,
	}

	upgrader = websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 5 * time.Second,
	}
	DB *gorm.DB
)

func getMeHandler(w http.ResponseWriter, r *http.Request) {
	reqToken := r.Header.Get("Authorization")
	profile := models.FindProfileByPubToken(reqToken)

	if reqToken == "" || (profile == models.Profile{}) || (profile.AccessToken == "") {
		url := fmt.Sprintf("%v%v", os.Getenv("BASE_URL"), "auth_with_google")
		http.Redirect(w, r, url, http.StatusFound)
		return
	}

	jsn, _ := json.Marshal(profile)
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(jsn)
}

func webSocketsHandler(hub *Hub, w http.ResponseWriter, r *http.Request, params martini.Params) {
	id, _ := strconv.ParseInt(params["conference_id"], 10, 32)

	upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	conn, err := upgrader.Upgrade(w, r, nil)

	if err != nil {
		log.Println(err)
		return
	}

	client := &Client{hub: hub, conn: conn, conferenceId: uint(id), send: make(chan []byte, 256)}
	client.hub.register <- client

	go client.readPump()
	go client.writePump()
}

func authChecker(w http.ResponseWriter, r *http.Request) {
	reqToken := r.Header.Get("Authorization")
	models.FindProfileByPubToken(reqToken)

	if reqToken == "" || models.IsCurrentProfileEmpty() || (models.CurrentProfile.AccessToken == "") {
		url := fmt.Sprintf("%v%v", os.Getenv("BASE_URL"), "auth_with_google")
		http.Redirect(w, r, url, http.StatusFound)
	}
}

func main() {
	DB = models.InitDB()
	defer DB.Close()
	hub := newHub()
	go hub.run()

	models.Notify = func(conferenceID uint, eventType string, data interface{}) {
		hub.broadcast <- Event{EventType: eventType, ConferenceID: conferenceID, Data: data}
	}

	m := martini.Classic()

	m.Group("/api/v1", func(r martini.Router) {
		r.Get("/get_me", getMeHandler)
		r.Put("/get_me", models.UpdateProfileHandler)

		r.Group("/conferences", func(rr martini.Router) {
			rr.Post("/", models.CreateConferenceHandler)
			rr.Get("/", models.GetConferencesHandler)
			rr.Post("/query", models.QueryConferencesHandler)
			rr.Get("/created", models.GetConferencesCreatedHandler)
			rr.Get("/attending", models.GetConferencesToAttendHandler)
			rr.Get("/announcement", models.GetAnnouncementHandler)
			rr.Get("/featuredspeaker", models.GetFeaturedSpeakerHandler)
			rr.Get("/:conference_id", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.GetConferenceHandler(w, r, params)
			})
			rr.Put("/:conference_id", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.UpdateConferenceHandler(w, r, params)
			})
			rr.Post("/:conference_id/register", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.RegisterForConferenceHandler(w, r, params)
			})
			rr.Delete("/:conference_id/register", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.UnregisterFromConferenceHandler(w, r, params)
			})
			rr.Post("/:conference_id/sessions", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.CreateSessionHandler(w, r, params)
			})
			rr.Get("/:conference_id/sessions", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.GetConferenceSessionsHandler(w, r, params)
			})
			rr.Get("/:conference_id/sessions/type/:type_of_session", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.GetConferenceSessionsByTypeHandler(w, r, params)
			})
		})

		r.Group("/sessions", func(rr martini.Router) {
			rr.Get("/lastquery", models.GetSessionsByTypeAndStartTimeHandler)
			rr.Get("/wishlist", models.GetWishlistSessionsHandler)
			rr.Get("/speaker/:speaker", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.GetSessionsBySpeakerHandler(w, r, params)
			})
			rr.Get("/name/:name", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.GetSessionsByNameHandler(w, r, params)
			})
			rr.Get("/highlights/:highlights", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.GetSessionsByHighlightsHandler(w, r, params)
			})
			rr.Post("/:session_id/wishlist", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.AddSessionToWishlistHandler(w, r, params)
			})
			rr.Delete("/:session_id/wishlist", func(w http.ResponseWriter, r *http.Request, params martini.Params) {
				models.DeleteSessionFromWishlistHandler(w, r, params)
			})
		})
	}, authChecker)

	m.Get("/ws/:conference_id", func(w http.ResponseWriter, r *http.Request, p martini.Params) {
		webSocketsHandler(hub, w, r, p)
	}, authChecker)

	m.Get("/users/auth/google/callback", AuthGoogleCallbackHandler)
	m.Post("/auth_with_temporary_token", AuthWithTempTokenHandler)
	m.Get("/auth_with_google", AuthWithGoogleHandler)

	m.Run()
}
