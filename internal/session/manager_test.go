package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"monad-minesweeper/internal/chain"
	"monad-minesweeper/internal/config"
	"monad-minesweeper/internal/game"
	"monad-minesweeper/internal/session"
	"monad-minesweeper/internal/store"

	"go.uber.org/zap/zaptest"
)

const wallet = "0x1111111111111111111111111111111111111111"

type event struct {
	session string
	action  string
}

type recordingHub struct {
	mu     sync.Mutex
	events []event
}

func (h *recordingHub) Broadcast(sessionID, action string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event{sessionID, action})
}

func (h *recordingHub) actions() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	for i, e := range h.events {
		out[i] = e.action
	}
	return out
}

type fakeSubmitter struct {
	mu     sync.Mutex
	calls  []int
	player string
	err    error
}

func (f *fakeSubmitter) SubmitScore(ctx context.Context, player string, score int) (chain.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, score)
	f.player = player
	if f.err != nil {
		return chain.Receipt{Error: chain.UserMessage(f.err)}, f.err
	}
	return chain.Receipt{Success: true, TransactionHash: "0xabc", Message: "ok"}, nil
}

type staticNames struct {
	name string
	err  error
}

func (s staticNames) Username(ctx context.Context, address string) (string, error) {
	return s.name, s.err
}

func testConfig() config.Config {
	return config.Config{Game: config.Game{
		BoardSize:    10,
		Mines:        config.MineRange{Min: 15, Max: 40},
		ScorePerMine: 10,
	}}
}

func newManager(t *testing.T, sub chain.Submitter, names staticNames) (*session.Manager, *recordingHub) {
	t.Helper()
	hub := &recordingHub{}
	return session.NewManager(store.NewMemoryStore(), testConfig(), hub, sub, names, zaptest.NewLogger(t)), hub
}

// rigBoard starts a round and replaces its field: mines fill rows 8 and 9
// (15 in total) so revealing (0,0) wins, and revealing (9,0) loses.
func rigBoard(t *testing.T, m *session.Manager, id string) {
	t.Helper()
	if _, err := m.Start(id, 15); err != nil {
		t.Fatal(err)
	}
	s, _ := m.Get(id)
	field := make(game.Field, 100)
	var mines []int
	for c := 0; c < 10; c++ {
		mines = append(mines, 90+c)
	}
	for c := 0; c < 5; c++ {
		mines = append(mines, 80+c)
	}
	for _, i := range mines {
		field[i] = game.Mine
	}
	for i := range field {
		if field[i] == game.Mine {
			continue
		}
		r, c := i/10, i%10
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				nr, nc := r+dr, c+dc
				if (dr != 0 || dc != 0) && nr >= 0 && nr < 10 && nc >= 0 && nc < 10 && field[nr*10+nc] == game.Mine {
					field[i]++
				}
			}
		}
	}
	s.Game.Field = field
	s.Game.MineCount = len(mines)
}

func TestCreateSession(t *testing.T) {
	m, _ := newManager(t, &fakeSubmitter{}, staticNames{name: "sweeper"})

	if _, err := m.CreateSession(context.Background(), ""); !errors.Is(err, session.ErrNoPlayer) {
		t.Fatalf("empty wallet err = %v", err)
	}
	if _, err := m.CreateSession(context.Background(), "0x123"); !errors.Is(err, session.ErrNoPlayer) {
		t.Fatalf("short wallet err = %v", err)
	}

	s, err := m.CreateSession(context.Background(), wallet)
	if err != nil {
		t.Fatal(err)
	}
	if s.Username != "sweeper" || s.ID == "" {
		t.Fatalf("session = %+v", s)
	}
	if got, ok := m.Get(s.ID); !ok || got != s {
		t.Fatal("session not stored")
	}
	if !s.OwnedBy("0X1111111111111111111111111111111111111111") || s.OwnedBy("") {
		t.Fatal("OwnedBy mismatch")
	}
}

func TestCreateSessionIgnoresLookupFailure(t *testing.T) {
	m, _ := newManager(t, &fakeSubmitter{}, staticNames{err: errors.New("down")})
	s, err := m.CreateSession(context.Background(), wallet)
	if err != nil {
		t.Fatal(err)
	}
	if s.Username != "" {
		t.Fatalf("username = %q", s.Username)
	}
}

func TestStartRejectsRange(t *testing.T) {
	m, hub := newManager(t, &fakeSubmitter{}, staticNames{})
	s, _ := m.CreateSession(context.Background(), wallet)

	view, err := m.Start(s.ID, 5)
	if !errors.Is(err, game.ErrInvalidMineCount) {
		t.Fatalf("err = %v", err)
	}
	if view.IsStarted || s.Game.Field != nil {
		t.Fatal("rejected start changed state")
	}
	if len(hub.actions()) != 0 {
		t.Fatalf("broadcasts: %v", hub.actions())
	}

	if _, err := m.Start("missing", 20); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("missing session err = %v", err)
	}
}

func TestWinSubmitsScoreOnce(t *testing.T) {
	sub := &fakeSubmitter{}
	m, hub := newManager(t, sub, staticNames{})
	s, _ := m.CreateSession(context.Background(), wallet)
	rigBoard(t, m, s.ID)

	mv, err := m.Reveal(s.ID, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if mv.Result.Outcome != game.OutcomeWon || mv.Board.Score != 150 || mv.Board.IsStarted {
		t.Fatalf("move = %+v", mv.Result)
	}

	// further clicks on the finished board are ignored and do not resubmit
	if _, err := m.Reveal(s.ID, 1, 1); !errors.Is(err, game.ErrInvalidCellAction) {
		t.Fatalf("reveal after win err = %v", err)
	}
	m.Wait()

	if len(sub.calls) != 1 || sub.calls[0] != 150 || sub.player != wallet {
		t.Fatalf("submissions = %v by %s", sub.calls, sub.player)
	}
	want := []string{session.ActionStateUpdated, session.ActionGameWon, session.ActionScoreSubmitted}
	got := hub.actions()
	if len(got) != len(want) {
		t.Fatalf("actions = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("actions = %v, want %v", got, want)
		}
	}
}

func TestFailedSubmissionLeavesGameAlone(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("execution reverted")}
	m, hub := newManager(t, sub, staticNames{})
	s, _ := m.CreateSession(context.Background(), wallet)
	rigBoard(t, m, s.ID)

	if _, err := m.Reveal(s.ID, 0, 0); err != nil {
		t.Fatal(err)
	}
	m.Wait()

	acts := hub.actions()
	if acts[len(acts)-1] != session.ActionScoreFailed {
		t.Fatalf("actions = %v", acts)
	}
	view, err := m.View(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if view.State != game.StateWon || view.Score != 150 {
		t.Fatalf("view after failed submission = %s/%d", view.State, view.Score)
	}
	if _, err := m.Start(s.ID, 20); err != nil {
		t.Fatalf("new round after failed submission: %v", err)
	}
}

func TestLossDoesNotSubmit(t *testing.T) {
	sub := &fakeSubmitter{}
	m, hub := newManager(t, sub, staticNames{})
	s, _ := m.CreateSession(context.Background(), wallet)
	rigBoard(t, m, s.ID)

	mv, err := m.Reveal(s.ID, 9, 0)
	if err != nil {
		t.Fatal(err)
	}
	if mv.Result.Outcome != game.OutcomeLost || !mv.Board.IsGameOver {
		t.Fatalf("move = %+v", mv.Result)
	}
	m.Wait()
	if len(sub.calls) != 0 {
		t.Fatalf("loss submitted %v", sub.calls)
	}
	if acts := hub.actions(); acts[len(acts)-1] != session.ActionGameLost {
		t.Fatalf("actions = %v", acts)
	}
}

func TestFlagAndEnd(t *testing.T) {
	m, _ := newManager(t, &fakeSubmitter{}, staticNames{})
	s, _ := m.CreateSession(context.Background(), wallet)
	rigBoard(t, m, s.ID)

	mv, err := m.Flag(s.ID, 9, 9)
	if err != nil {
		t.Fatal(err)
	}
	if mv.Board.Cells[9][9].State != game.ViewFlagged || mv.Board.MinesRemaining != 14 {
		t.Fatalf("flag view = %+v", mv.Board.Cells[9][9])
	}

	if err := m.End(s.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := m.View(s.ID); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("err = %v", err)
	}
	if err := m.End(s.ID); !errors.Is(err, session.ErrSessionNotFound) {
		t.Fatalf("second End err = %v", err)
	}
}
