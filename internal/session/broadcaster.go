package session

type Broadcaster interface {
	Broadcast(sessionID string, action string, data interface{})
}

// Notification actions pushed to a session's listeners.
const (
	ActionStateUpdated   = "state-updated"
	ActionGameWon        = "game-won"
	ActionGameLost       = "game-lost"
	ActionScoreSubmitted = "score-submitted"
	ActionScoreFailed    = "score-failed"
)
