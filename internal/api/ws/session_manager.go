package ws

import (
	"monad-minesweeper/internal/game"
	"monad-minesweeper/internal/session"
)

type SessionManager interface {
	Get(id string) (*session.Session, bool)
	Start(id string, mineCount int) (game.BoardView, error)
	Reveal(id string, row, col int) (session.Move, error)
	Flag(id string, row, col int) (session.Move, error)
}
