package kitchen

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"comanda/internal/models"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Station displays connect from the local network
	},
}

// Ticket is one dish in flight on the kitchen display.
type Ticket struct {
	TableID         int                    `json:"tableId"`
	TableName       string                 `json:"tableName,omitempty"`
	LineID          string                 `json:"lineId"`
	Name            string                 `json:"name"`
	Qty             int                    `json:"qty"`
	Variants        []string               `json:"variants"`
	Status          models.OrderItemStatus `json:"status"`
	SentToKitchenAt *time.Time             `json:"sentToKitchenAt,omitempty"`
	// Overdue is set when the ticket has been in flight longer than the
	// dish's prep time limit.
	Overdue bool `json:"overdue"`
}

// Update is the message pushed to every display after a committed state
// change.
type Update struct {
	Scope   string   `json:"scope"`
	Tickets []Ticket `json:"tickets"`
}

// Hub fans kitchen queue updates out to the connected displays.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]bool)}
}

// HandleWS upgrades the request and registers the display until it
// disconnects.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	cl := &client{
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()

	go cl.writePump()
	go h.readPump(cl)
}

// StateChanged implements tables.Notifier: it rebuilds the kitchen queue
// from the new state and broadcasts it.
func (h *Hub) StateChanged(scope string, state *models.Restaurant) {
	update := Update{Scope: scope, Tickets: BuildQueue(state, time.Now())}
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling kitchen update: %v", err)
		return
	}
	h.broadcast(data)
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			log.Println("Kitchen display buffer full, dropping update")
		}
	}
}

func (h *Hub) remove(cl *client) {
	h.mu.Lock()
	if h.clients[cl] {
		delete(h.clients, cl)
		close(cl.send)
	}
	h.mu.Unlock()
}

// readPump drains incoming frames so pongs are processed; displays are
// receive-only.
func (h *Hub) readPump(cl *client) {
	defer func() {
		h.remove(cl)
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(512 * 1024)
	cl.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	cl.conn.SetPongHandler(func(string) error {
		cl.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

// writePump pumps queued updates to the display connection.
func (c *client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BuildQueue lists every dish currently in flight for the kitchen, oldest
// first by table order, with overdue flags computed against each dish's
// prep time limit.
func BuildQueue(state *models.Restaurant, now time.Time) []Ticket {
	var tickets []Ticket
	for _, table := range state.Tables {
		for _, line := range table.Order {
			switch line.Status {
			case models.StatusEnviadaCocina, models.StatusEnPreparacion, models.StatusListoServir:
			default:
				continue
			}
			overdue := false
			if line.PrepTimeLimit > 0 && line.SentToKitchenAt != nil {
				overdue = now.Sub(*line.SentToKitchenAt) > time.Duration(line.PrepTimeLimit)*time.Minute
			}
			tickets = append(tickets, Ticket{
				TableID:         table.ID,
				TableName:       table.Name,
				LineID:          line.ID,
				Name:            line.Name,
				Qty:             line.Qty,
				Variants:        line.Variants,
				Status:          line.Status,
				SentToKitchenAt: line.SentToKitchenAt,
				Overdue:         overdue,
			})
		}
	}
	return tickets
}
