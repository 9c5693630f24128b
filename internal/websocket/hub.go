package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// MessageType labels a seat-feed message.
type MessageType string

const (
	MessageTypeSeatBooked   MessageType = "seat_booked"
	MessageTypeSeatReleased MessageType = "seat_released"
)

// SeatUpdate is one seat's status change.
type SeatUpdate struct {
	SeatNumber string `json:"seatNumber"`
	IsBooked   bool   `json:"isBooked"`
}

// Message is a seat-feed broadcast for one flight.
type Message struct {
	Type       MessageType  `json:"type"`
	FlightCode string       `json:"flightCode"`
	Seats      []SeatUpdate `json:"seats"`
	Timestamp  int64        `json:"timestamp"`
}

// Client is one subscribed connection.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	flightCode string
}

// Hub fans seat updates out to clients watching a flight.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
}

// NewHub creates a hub; the caller starts Run in a goroutine.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
	}
}

// Run drains the hub's channels until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.flightCode] == nil {
				h.clients[client.flightCode] = make(map[*Client]bool)
			}
			h.clients[client.flightCode][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.flightCode]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.flightCode)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("WebSocket: failed to marshal message: %v", err)
				continue
			}

			h.mu.RLock()
			clients := h.clients[message.FlightCode]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[message.FlightCode], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastSeatBooked tells watchers of a flight that a seat was claimed.
func (h *Hub) BroadcastSeatBooked(flightCode, seatNumber string) {
	h.broadcast <- &Message{
		Type:       MessageTypeSeatBooked,
		FlightCode: flightCode,
		Seats:      []SeatUpdate{{SeatNumber: seatNumber, IsBooked: true}},
		Timestamp:  time.Now().UnixMilli(),
	}
}

// BroadcastSeatReleased tells watchers that a cancelled ticket freed its seat.
func (h *Hub) BroadcastSeatReleased(flightCode, seatNumber string) {
	h.broadcast <- &Message{
		Type:       MessageTypeSeatReleased,
		FlightCode: flightCode,
		Seats:      []SeatUpdate{{SeatNumber: seatNumber, IsBooked: false}},
		Timestamp:  time.Now().UnixMilli(),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeFlight upgrades the request and subscribes it to a flight's
// seat feed.
func (h *Hub) ServeFlight(w http.ResponseWriter, r *http.Request, flightCode string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket: upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, 64),
		flightCode: flightCode,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
