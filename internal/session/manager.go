package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"monad-minesweeper/internal/chain"
	"monad-minesweeper/internal/config"
	"monad-minesweeper/internal/game"
	"monad-minesweeper/internal/profile"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNoPlayer        = errors.New("a connected wallet is required to play")
)

const usernameTimeout = 3 * time.Second

type Manager struct {
	store     Store
	cfg       config.Game
	hub       Broadcaster
	submitter chain.Submitter
	names     profile.Lookup
	timeout   time.Duration
	log       *zap.Logger

	inflight sync.WaitGroup
}

func NewManager(s Store, cfg config.Config, hub Broadcaster, submitter chain.Submitter, names profile.Lookup, logger *zap.Logger) *Manager {
	timeout := cfg.Chain.SubmitTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Manager{
		store:     s,
		cfg:       cfg.Game,
		hub:       hub,
		submitter: submitter,
		names:     names,
		timeout:   timeout,
		log:       logger.Named("session"),
	}
}

func (m *Manager) CreateSession(ctx context.Context, player string) (*Session, error) {
	if !common.IsHexAddress(player) {
		return nil, ErrNoPlayer
	}
	s := &Session{
		ID:        uuid.NewString(),
		Player:    player,
		Game:      game.NewGameState(m.cfg, nil),
		CreatedAt: time.Now(),
	}

	// the username is cosmetic, a failed lookup only leaves it blank
	if m.names != nil {
		lctx, cancel := context.WithTimeout(ctx, usernameTimeout)
		name, err := m.names.Username(lctx, player)
		cancel()
		if err != nil {
			m.log.Warn("username lookup failed", zap.String("player", player), zap.Error(err))
		}
		s.Username = name
	}

	m.store.SaveSession(s)
	m.log.Info("session created", zap.String("session", s.ID), zap.String("player", player))
	return s, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	return m.store.GetSession(id)
}

func (m *Manager) End(id string) error {
	if _, ok := m.store.GetSession(id); !ok {
		return ErrSessionNotFound
	}
	m.store.DeleteSession(id)
	return nil
}

func (m *Manager) View(id string) (game.BoardView, error) {
	s, ok := m.store.GetSession(id)
	if !ok {
		return game.BoardView{}, ErrSessionNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return game.View(s.Game), nil
}

// Start begins a round. A rejected mine count leaves the session untouched.
func (m *Manager) Start(id string, mineCount int) (game.BoardView, error) {
	s, ok := m.store.GetSession(id)
	if !ok {
		return game.BoardView{}, ErrSessionNotFound
	}

	s.mu.Lock()
	err := s.Game.Start(mineCount)
	view := game.View(s.Game)
	s.mu.Unlock()

	if err != nil {
		return view, err
	}
	m.store.SaveSession(s)
	m.log.Debug("round started", zap.String("session", id), zap.Int("mines", mineCount))
	m.hub.Broadcast(id, ActionStateUpdated, gin.H{"board": view})
	return view, nil
}

func (m *Manager) Reveal(id string, row, col int) (Move, error) {
	return m.apply(id, func(g *game.GameState) (game.Result, error) {
		return g.Reveal(row, col)
	})
}

func (m *Manager) Flag(id string, row, col int) (Move, error) {
	return m.apply(id, func(g *game.GameState) (game.Result, error) {
		return g.Flag(row, col)
	})
}

func (m *Manager) apply(id string, op func(*game.GameState) (game.Result, error)) (Move, error) {
	s, ok := m.store.GetSession(id)
	if !ok {
		return Move{}, ErrSessionNotFound
	}

	s.mu.Lock()
	res, err := op(s.Game)
	mv := Move{Board: game.View(s.Game), Result: res}
	s.mu.Unlock()

	if err != nil {
		return mv, err
	}
	m.store.SaveSession(s)

	switch res.Outcome {
	case game.OutcomeLost:
		m.log.Info("round lost", zap.String("session", id))
		m.hub.Broadcast(id, ActionGameLost, gin.H{"board": mv.Board})
	case game.OutcomeWon:
		m.log.Info("round won", zap.String("session", id), zap.Int("score", res.Score))
		m.hub.Broadcast(id, ActionGameWon, gin.H{"board": mv.Board, "score": res.Score})
		m.submitScore(s.ID, s.Player, res.Score)
	default:
		m.hub.Broadcast(id, ActionStateUpdated, gin.H{"board": mv.Board})
	}
	return mv, nil
}

// submitScore hands the score to the chain in the background. The game state
// has already been reset, so the result only feeds a notification.
func (m *Manager) submitScore(sessionID, player string, score int) {
	if score <= 0 {
		m.log.Warn("skipping submission of empty score", zap.String("session", sessionID))
		return
	}
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		rec, err := m.submitter.SubmitScore(ctx, player, score)
		if err != nil {
			m.log.Warn("score submission failed",
				zap.String("session", sessionID),
				zap.Int("score", score),
				zap.Error(err))
			m.hub.Broadcast(sessionID, ActionScoreFailed, gin.H{"score": score, "error": rec.Error})
			return
		}
		m.hub.Broadcast(sessionID, ActionScoreSubmitted, gin.H{
			"score":           score,
			"transactionHash": rec.TransactionHash,
			"message":         rec.Message,
		})
	}()
}

// Wait blocks until every background score submission has finished.
func (m *Manager) Wait() {
	m.inflight.Wait()
}
