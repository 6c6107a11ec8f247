package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StockEvent is pushed to connected clients whenever the mutation engine
// commits a balance change, so stock screens refresh without polling.
type StockEvent struct {
	Type            string    `json:"type"`
	Action          string    `json:"action"`
	StockID         uuid.UUID `json:"stock_id"`
	ProductName     string    `json:"product_name,omitempty"`
	ProductCode     string    `json:"product_code,omitempty"`
	Quantity        int       `json:"quantity"`
	QuantityChanged int       `json:"quantity_changed"`
	TransactionType string    `json:"transaction_type"`
	PersonName      string    `json:"person_name"`
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
		log:        log,
	}
}

// BroadcastEvent marshals the event and queues it for all clients.
func (h *Hub) BroadcastEvent(event StockEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to marshal stock event", zap.Error(err))
		return
	}
	h.Broadcast <- msg
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Info("websocket client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
