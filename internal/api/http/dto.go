package http

// CreateSessionRequest opens a session for a connected wallet.
type CreateSessionRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// StartRequest represents the payload for /session/:id/start.
type StartRequest struct {
	MineCount int `json:"mineCount"`
}

// CellRequest addresses one cell for a reveal or flag.
type CellRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// UpdatePlayerDataRequest is the score-submission payload.
type UpdatePlayerDataRequest struct {
	PlayerAddress string `json:"playerAddress"`
	ScoreAmount   *int   `json:"scoreAmount"`
}
