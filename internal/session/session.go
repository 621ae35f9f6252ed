package session

import (
	"strings"
	"sync"
	"time"

	"monad-minesweeper/internal/game"
)

// Session binds one player's wallet to one game board.
type Session struct {
	ID        string          `json:"id"`
	Player    string          `json:"player"`
	Username  string          `json:"username"`
	Game      *game.GameState `json:"-"`
	CreatedAt time.Time       `json:"createdAt"`

	mu sync.Mutex // serialises every mutation of Game
}

// OwnedBy reports whether address is the wallet that opened the session.
func (s *Session) OwnedBy(address string) bool {
	return address != "" && strings.EqualFold(s.Player, address)
}

type Store interface {
	GetSession(id string) (*Session, bool)
	SaveSession(s *Session)
	DeleteSession(id string)
}

// Move is the outcome of a reveal or flag together with the board it produced.
type Move struct {
	Board  game.BoardView `json:"board"`
	Result game.Result    `json:"result"`
}
