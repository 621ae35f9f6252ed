package ws

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"monad-minesweeper/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Hub struct {
	mu       sync.Mutex
	sessions map[string]map[*websocket.Conn]struct{}
	manager  SessionManager
	log      *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]map[*websocket.Conn]struct{}),
		log:      logger.Named("ws"),
	}
}

// SetManager wires the session manager after construction; the manager in
// turn needs the hub to broadcast.
func (h *Hub) SetManager(m SessionManager) {
	h.manager = m
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

type inbound struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type cellData struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type startData struct {
	MineCount int `json:"mineCount"`
}

func (h *Hub) HandleWS(c *gin.Context) {
	sessionID := c.Query("session_id")
	wallet := c.Query("wallet")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session_id"})
		return
	}
	s, ok := h.manager.Get(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if !s.OwnedBy(wallet) {
		c.JSON(http.StatusForbidden, gin.H{"error": "wallet does not own this session"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	h.add(sessionID, conn)
	defer h.remove(sessionID, conn)

	for {
		var msg inbound
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Debug("read failed", zap.String("session", sessionID), zap.Error(err))
			}
			return
		}
		h.dispatch(sessionID, msg)
	}
}

// dispatch applies a client action. Results reach the client through the
// manager's broadcasts; only user-facing failures are answered directly.
func (h *Hub) dispatch(sessionID string, msg inbound) {
	var err error
	switch msg.Action {
	case "start":
		var d startData
		if err = json.Unmarshal(msg.Data, &d); err == nil {
			_, err = h.manager.Start(sessionID, d.MineCount)
		}
	case "reveal", "flag":
		var d cellData
		if err = json.Unmarshal(msg.Data, &d); err == nil {
			if msg.Action == "reveal" {
				_, err = h.manager.Reveal(sessionID, d.Row, d.Col)
			} else {
				_, err = h.manager.Flag(sessionID, d.Row, d.Col)
			}
		}
	default:
		h.log.Debug("unknown action", zap.String("action", msg.Action))
		return
	}

	switch {
	case err == nil,
		errors.Is(err, game.ErrAlreadyPlaying),
		errors.Is(err, game.ErrInvalidCellAction):
	default:
		h.Broadcast(sessionID, "error", gin.H{"action": msg.Action, "error": err.Error()})
	}
}

func (h *Hub) add(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[sessionID]; !ok {
		h.sessions[sessionID] = make(map[*websocket.Conn]struct{})
	}
	h.sessions[sessionID][conn] = struct{}{}
}

func (h *Hub) remove(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.sessions[sessionID]; ok {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.sessions, sessionID)
		}
	}
	_ = conn.Close()
}

func (h *Hub) Broadcast(sessionID string, action string, data interface{}) {
	if h == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sessions[sessionID]
	if !ok {
		return
	}

	message := map[string]interface{}{
		"action": action,
		"data":   data,
	}
	for conn := range clients {
		if err := conn.WriteJSON(message); err != nil {
			h.log.Debug("dropping connection", zap.String("session", sessionID), zap.Error(err))
			conn.Close()
			delete(clients, conn)
		}
	}
}

// Listeners returns how many connections are subscribed to a session.
func (h *Hub) Listeners(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions[sessionID])
}
