package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"monad-minesweeper/internal/config"

	"github.com/looplab/fsm"
)

// States of a round.
const (
	StateIdle    = "idle"
	StatePlaying = "playing"
	StateWon     = "won"
	StateLost    = "lost"
)

const (
	eventStart = "start"
	eventWin   = "win"
	eventLose  = "lose"
)

// GameState is the single owner of a player's board. All mutation goes through
// Start, Reveal and Flag.
type GameState struct {
	Size         int
	Mines        config.MineRange
	ScorePerMine int

	MineCount int
	Score     int
	Field     Field // nil outside of a round
	Mask      Mask

	machine *fsm.FSM
	rng     *rand.Rand
}

func NewGameState(cfg config.Game, rng *rand.Rand) *GameState {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	perMine := cfg.ScorePerMine
	if perMine <= 0 {
		perMine = 10
	}
	return &GameState{
		Size:         cfg.BoardSize,
		Mines:        cfg.Mines,
		ScorePerMine: perMine,
		Mask:         make(Mask, cfg.BoardSize*cfg.BoardSize),
		machine:      newMachine(StateIdle),
		rng:          rng,
	}
}

func newMachine(initial string) *fsm.FSM {
	return fsm.NewFSM(
		initial,
		fsm.Events{
			{Name: eventStart, Src: []string{StateIdle, StateWon, StateLost}, Dst: StatePlaying},
			{Name: eventWin, Src: []string{StatePlaying}, Dst: StateWon},
			{Name: eventLose, Src: []string{StatePlaying}, Dst: StateLost},
		},
		fsm.Callbacks{},
	)
}

func (g *GameState) State() string    { return g.machine.Current() }
func (g *GameState) IsStarted() bool  { return g.machine.Is(StatePlaying) }
func (g *GameState) IsGameOver() bool { return g.machine.Is(StateLost) }
func (g *GameState) IsWon() bool      { return g.machine.Is(StateWon) }

func (g *GameState) transition(event string) error {
	if err := g.machine.Event(context.Background(), event); err != nil {
		return fmt.Errorf("game transition %q from %q: %w", event, g.machine.Current(), err)
	}
	return nil
}

// Start begins a new round with mineCount mines.
func (g *GameState) Start(mineCount int) error {
	if !g.Mines.Contains(mineCount) {
		return fmt.Errorf("%w: mines range: %s", ErrInvalidMineCount, g.Mines)
	}
	if g.IsStarted() {
		return ErrAlreadyPlaying
	}

	field, err := Generate(g.Size, mineCount, g.rng)
	if err != nil {
		return err
	}
	g.Mask = make(Mask, g.Size*g.Size)
	g.Field = field
	g.MineCount = mineCount
	g.Score = 0
	return g.transition(eventStart)
}

// Reveal opens the cell at (row, col), cascading through zero-count regions.
func (g *GameState) Reveal(row, col int) (Result, error) {
	if !in(row, col, g.Size) {
		return Result{Outcome: OutcomeNone}, ErrOutOfBounds
	}
	if !g.IsStarted() {
		return Result{Outcome: OutcomeNone}, ErrInvalidCellAction
	}
	idx := row*g.Size + col
	if g.Mask[idx] == CellRevealed || g.Mask[idx] == CellFlagged {
		return Result{Outcome: OutcomeNone}, ErrInvalidCellAction
	}

	if g.Field[idx] == Mine {
		return g.lose()
	}

	opened := g.flood(idx)
	if g.allSafeRevealed() {
		return g.win(opened)
	}
	return Result{Outcome: OutcomeRevealed, Revealed: opened}, nil
}

// flood reveals start and, through a LIFO work list, every cell reachable
// across zero-count cells. Numbered border cells are revealed but not expanded.
func (g *GameState) flood(start int) []int {
	var opened []int
	stack := []int{start}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if g.Mask[idx] == CellRevealed {
			continue
		}
		g.Mask[idx] = CellRevealed
		opened = append(opened, idx)
		if g.Field[idx] != 0 {
			continue
		}
		neighbours(idx/g.Size, idx%g.Size, g.Size, func(r, c int) {
			if n := r*g.Size + c; g.Mask[n] != CellRevealed {
				stack = append(stack, n)
			}
		})
	}
	return opened
}

func (g *GameState) lose() (Result, error) {
	var bombs []int
	for i, v := range g.Field {
		if v == Mine {
			g.Mask[i] = CellBomb
			bombs = append(bombs, i)
		}
	}
	g.Field = nil
	if err := g.transition(eventLose); err != nil {
		return Result{Outcome: OutcomeNone}, err
	}
	return Result{Outcome: OutcomeLost, Revealed: bombs}, nil
}

func (g *GameState) win(opened []int) (Result, error) {
	g.Score = g.MineCount * g.ScorePerMine
	g.Field = nil
	g.Mask = make(Mask, g.Size*g.Size)
	if err := g.transition(eventWin); err != nil {
		return Result{Outcome: OutcomeNone}, err
	}
	return Result{Outcome: OutcomeWon, Revealed: opened, Score: g.Score}, nil
}

// Flag toggles a hidden cell between hidden and flagged.
func (g *GameState) Flag(row, col int) (Result, error) {
	if !in(row, col, g.Size) {
		return Result{Outcome: OutcomeNone}, ErrOutOfBounds
	}
	if !g.IsStarted() {
		return Result{Outcome: OutcomeNone}, ErrInvalidCellAction
	}
	idx := row*g.Size + col
	switch g.Mask[idx] {
	case CellHidden:
		g.Mask[idx] = CellFlagged
	case CellFlagged:
		g.Mask[idx] = CellHidden
	default:
		return Result{Outcome: OutcomeNone}, ErrInvalidCellAction
	}
	return Result{Outcome: OutcomeFlagged}, nil
}
