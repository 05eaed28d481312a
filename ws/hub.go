package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/bigbadbobbo/foodtruck-api/pkg/metrics"
	"github.com/bigbadbobbo/foodtruck-api/utils"
)

// writeWait bounds a single push so one stalled peer cannot hold up the hub.
const writeWait = 10 * time.Second

// Hub fans new messages out to every open connection of their receiver.
type Hub struct {
	clients    map[string]map[*websocket.Conn]bool // userID -> connections
	broadcast  chan Delivery
	register   chan Subscription
	unregister chan Subscription
	done       chan struct{}
	mu         sync.Mutex
	log        *logrus.Logger
	writeWait  time.Duration
}

type Subscription struct {
	Conn   *websocket.Conn
	UserID string
}

type Delivery struct {
	UserID  string
	Payload any
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients:    make(map[string]map[*websocket.Conn]bool),
		broadcast:  make(chan Delivery, 256),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		done:       make(chan struct{}),
		log:        log,
		writeWait:  writeWait,
	}
}

// Run serves register/unregister/broadcast until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.UserID] == nil {
				h.clients[sub.UserID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.UserID][sub.Conn] = true
			h.mu.Unlock()
			metrics.WSConnections.Inc()

		case sub := <-h.unregister:
			h.drop(sub.UserID, sub.Conn)

		case d := <-h.broadcast:
			h.mu.Lock()
			conns := make([]*websocket.Conn, 0, len(h.clients[d.UserID]))
			for conn := range h.clients[d.UserID] {
				conns = append(conns, conn)
			}
			h.mu.Unlock()
			for _, conn := range conns {
				if err := h.write(conn, d.Payload); err != nil {
					h.log.WithError(err).WithField("user", d.UserID).Warn("ws write failed")
					h.drop(d.UserID, conn)
				}
			}

		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.clients {
				for conn := range conns {
					conn.Close()
				}
			}
			h.clients = make(map[string]map[*websocket.Conn]bool)
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() { close(h.done) }

func (h *Hub) write(conn *websocket.Conn, v any) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

func (h *Hub) drop(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID][conn]; !ok {
		return
	}
	delete(h.clients[userID], conn)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
	conn.Close()
	metrics.WSConnections.Dec()
}

// Notify queues v for userID. A full queue drops the push; the message is
// already stored and can be listed.
func (h *Hub) Notify(userID string, v any) {
	select {
	case h.broadcast <- Delivery{UserID: userID, Payload: v}:
	default:
		h.log.WithField("user", userID).Warn("ws queue full, push dropped")
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades GET /ws/messages for the authenticated user.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	userID := utils.CurrentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade failed")
		return
	}

	sub := Subscription{Conn: conn, UserID: userID}
	select {
	case h.register <- sub:
	case <-h.done:
		conn.Close()
		return
	}
	go h.readPump(sub)
}

// readPump discards client frames and unregisters once the peer goes away.
func (h *Hub) readPump(sub Subscription) {
	defer func() {
		select {
		case h.unregister <- sub:
		case <-h.done:
		}
	}()
	for {
		if _, _, err := sub.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
