package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Alert message types pushed to caregivers
const (
	MsgEmotionAlert      MessageType = "emotion_alert"
	MsgDeclineAlert      MessageType = "decline_alert"
	MsgCombinedRiskAlert MessageType = "combined_risk_alert"
	MsgAppointmentMissed MessageType = "appointment_missed"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections keyed by caregiver. A caregiver can be
// connected from multiple devices; every connection gets each alert.
type Hub struct {
	conns map[string]map[*Connection]bool // caregiverID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	logger *zap.Logger
}

// Connection represents one caregiver WebSocket connection
type Connection struct {
	CaregiverID string
	Send        chan []byte
	Hub         *Hub
}

// BroadcastMessage is an alert addressed to one caregiver
type BroadcastMessage struct {
	CaregiverID string
	Message     *Message
}

// NewHub creates a new WebSocket hub
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.CaregiverID] == nil {
				h.conns[conn.CaregiverID] = make(map[*Connection]bool)
			}
			h.conns[conn.CaregiverID][conn] = true
			h.mu.Unlock()
			h.logger.Info("caregiver connected", zap.String("caregiverId", conn.CaregiverID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.conns[conn.CaregiverID]; ok {
				if conns[conn] {
					delete(conns, conn)
					close(conn.Send)
					if len(conns) == 0 {
						delete(h.conns, conn.CaregiverID)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Info("caregiver disconnected", zap.String("caregiverId", conn.CaregiverID))

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.CaregiverID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToCaregiver pushes an alert to all of a caregiver's connections
// (implements service.Broadcaster)
func (h *Hub) BroadcastToCaregiver(caregiverID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		CaregiverID: caregiverID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}
