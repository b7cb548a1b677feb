package main

import (
	"encoding/json"
	"log"

	"confcentral/models"

	"github.com/gorilla/websocket"
)

type Client struct {
	hub          *Hub
	conferenceId uint
	conn         *websocket.Conn
	send         chan []byte
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error: %v", err)
			}
			break
		}

		event := Event{ConferenceID: c.conferenceId}
		json.Unmarshal(message, &event)

		if reply := processEvent(&event); reply != nil {
			msg, _ := json.Marshal(reply)
			c.send <- msg
		}
	}
}

// processEvent answers client requests directly; announcements and
// featured speakers are pushed by the models package, not requested.
func processEvent(e *Event) *Event {
	switch e.EventType {
	case "ping_message":
		return &Event{EventType: "pong_message", ConferenceID: e.ConferenceID}
	case "get_announcement":
		return &Event{
			EventType:    "announcement",
			ConferenceID: e.ConferenceID,
			Data:         models.StringMessage{Data: models.Announcement()},
		}
	case "get_featured_speaker":
		return &Event{
			EventType:    "featured_speaker",
			ConferenceID: e.ConferenceID,
			Data:         models.CurrentFeaturedSpeaker(),
		}
	}
	return nil
}

func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}
}
