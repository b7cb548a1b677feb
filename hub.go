package main

import (
	"encoding/json"
	"log"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Event
	register   chan *Client
	unregister chan *Client
}

// Event goes out to every client subscribed to the conference;
// ConferenceID 0 addresses all clients.
type Event struct {
	EventType    string      `json:"event_type"`
	ConferenceID uint        `json:"conference_id"`
	Data         interface{} `json:"data"`
}

func newHub() *Hub {
	return &Hub{
		broadcast:  make(chan Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) run() {
	for {
		select {
		case newClient := <-h.register:
			log.Println("[WEBSOCKET] register client")
			h.clients[newClient] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				log.Println("[WEBSOCKET] unregister client")
				delete(h.clients, client)
				close(client.send)
			}
		case event := <-h.broadcast:
			msg, _ := json.Marshal(event)
			for client := range h.clients {
				if event.ConferenceID != 0 && client.conferenceId != event.ConferenceID {
					continue
				}
				select {
				case client.send <- msg:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}
