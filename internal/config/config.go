package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// MineRange is the inclusive-exclusive range of mine counts a round may start with.
type MineRange struct {
	Min int `json:"minMines"`
	Max int `json:"maxMines"`
}

func (r MineRange) Contains(n int) bool {
	return n >= r.Min && n < r.Max
}

func (r MineRange) String() string {
	return fmt.Sprintf("%d - %d", r.Min, r.Max)
}

type Game struct {
	BoardSize    int
	Mines        MineRange
	ScorePerMine int
}

type Chain struct {
	RPCURL          string
	ContractAddress string
	PrivateKey      string
	ChainID         int64
	SubmitTimeout   time.Duration
}

// Complete reports whether every value needed to sign a transaction is present.
func (c Chain) Complete() bool {
	return c.RPCURL != "" && c.ContractAddress != "" && c.PrivateKey != ""
}

type Profile struct {
	UsernameAPIURL string
	RedisAddr      string
	RedisPassword  string
	CacheTTL       time.Duration
}

type Config struct {
	HTTPAddr string
	LogLevel string
	Game     Game
	Chain    Chain
	Profile  Profile
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),
		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "info")),
		Game: Game{
			BoardSize: getenvInt("BOARD_SIZE", 10),
			Mines: MineRange{
				Min: getenvInt("MINES_MIN", 15),
				Max: getenvInt("MINES_MAX", 40),
			},
			ScorePerMine: getenvInt("SCORE_PER_MINE", 10),
		},
		Chain: Chain{
			RPCURL:          os.Getenv("RPC_URL"),
			ContractAddress: os.Getenv("CONTRACT_ADDRESS"),
			PrivateKey:      os.Getenv("GAME_WALLET_PRIVATE_KEY"),
			ChainID:         getenvInt64("CHAIN_ID", 10143), // Monad testnet
			SubmitTimeout:   getenvDuration("SUBMIT_TIMEOUT", 60*time.Second),
		},
		Profile: Profile{
			UsernameAPIURL: getenv("USERNAME_API_URL", "https://www.monadclip.fun"),
			RedisAddr:      os.Getenv("REDIS_ADDR"),
			RedisPassword:  os.Getenv("REDIS_PASSWORD"),
			CacheTTL:       getenvDuration("USERNAME_CACHE_TTL", 10*time.Minute),
		},
	}
}

// Validate rejects game settings that would make a round impossible to generate.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case g.BoardSize <= 0:
		return errors.New("BOARD_SIZE must be positive")
	case g.Mines.Min < 0 || g.Mines.Min >= g.Mines.Max:
		return fmt.Errorf("invalid mine range %s", g.Mines)
	case g.Mines.Max > g.BoardSize*g.BoardSize:
		return fmt.Errorf("MINES_MAX %d exceeds %d cells", g.Mines.Max, g.BoardSize*g.BoardSize)
	case g.ScorePerMine <= 0:
		return errors.New("SCORE_PER_MINE must be positive")
	}
	return nil
}
