package game

import "errors"

// Field values: -1 marks a mine, 0..8 counts mined neighbours.
const Mine = -1

// Mask values.
const (
	CellHidden   = 0
	CellRevealed = 1
	CellFlagged  = 2
	CellBomb     = -1 // mine exposed after a loss
)

var (
	ErrInvalidMineCount  = errors.New("invalid mine count")
	ErrAlreadyPlaying    = errors.New("game already in progress")
	ErrInvalidCellAction = errors.New("cell action not allowed")
	ErrOutOfBounds       = errors.New("cell out of bounds")
)

// Field is the per-cell mine/adjacency grid indexed by row*size+col.
type Field []int

// Mask is the per-cell visibility state indexed like Field.
type Mask []int

func (m Mask) Count(v int) int {
	n := 0
	for _, c := range m {
		if c == v {
			n++
		}
	}
	return n
}

type Outcome string

const (
	OutcomeNone     Outcome = "none"
	OutcomeRevealed Outcome = "revealed"
	OutcomeFlagged  Outcome = "flagged"
	OutcomeWon      Outcome = "won"
	OutcomeLost     Outcome = "lost"
)

// Result describes what a single reveal or flag action changed.
type Result struct {
	Outcome  Outcome `json:"outcome"`
	Revealed []int   `json:"revealed,omitempty"` // cell indices newly exposed
	Score    int     `json:"score,omitempty"`
}

type Pos struct{ Row, Col int }

func in(row, col, size int) bool {
	return row >= 0 && row < size && col >= 0 && col < size
}

var dirs = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// neighbours calls fn for every in-bounds cell around (row, col).
func neighbours(row, col, size int, fn func(r, c int)) {
	for _, d := range dirs {
		r, c := row+d[0], col+d[1]
		if in(r, c, size) {
			fn(r, c)
		}
	}
}
