package main

import (
	"context"
	"net/http"

	httpapi "monad-minesweeper/internal/api/http"
	"monad-minesweeper/internal/api/ws"
	"monad-minesweeper/internal/chain"
	"monad-minesweeper/internal/config"
	"monad-minesweeper/internal/profile"
	"monad-minesweeper/internal/session"
	"monad-minesweeper/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ProviderSet is the server's dependency graph.
var ProviderSet = wire.NewSet(
	store.NewMemoryStore,
	wire.Bind(new(session.Store), new(*store.MemoryStore)),
	ws.NewHub,
	newSubmitter,
	newLookup,
	newManager,
	httpapi.NewRouter,
	newApp,
)

// newSubmitter falls back to a submitter that always reports the server as
// misconfigured when the chain settings are incomplete, so games stay playable.
func newSubmitter(cfg config.Config, logger *zap.Logger) (chain.Submitter, func(), error) {
	if !cfg.Chain.Complete() {
		logger.Warn("chain settings incomplete, score submission disabled")
		return chain.DisabledSubmitter{}, func() {}, nil
	}
	s, err := chain.NewContractSubmitter(context.Background(), cfg.Chain, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("score contract ready",
		zap.String("contract", cfg.Chain.ContractAddress),
		zap.Int64("chainId", cfg.Chain.ChainID))
	return s, s.Close, nil
}

func newLookup(cfg config.Config, logger *zap.Logger) (profile.Lookup, func()) {
	client := profile.NewClient(cfg.Profile.UsernameAPIURL, nil)
	if cfg.Profile.RedisAddr == "" {
		return client, func() {}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Profile.RedisAddr,
		Password: cfg.Profile.RedisPassword,
	})
	logger.Info("username cache enabled", zap.String("redis", cfg.Profile.RedisAddr))
	return profile.NewCachedLookup(client, rdb, cfg.Profile.CacheTTL, logger), func() { _ = rdb.Close() }
}

func newManager(s session.Store, cfg config.Config, hub *ws.Hub, sub chain.Submitter, names profile.Lookup, logger *zap.Logger) *session.Manager {
	rm := session.NewManager(s, cfg, hub, sub, names, logger)
	hub.SetManager(rm)
	return rm
}

type app struct {
	srv *http.Server
	rm  *session.Manager
	log *zap.Logger
}

func newApp(cfg config.Config, r *gin.Engine, rm *session.Manager, logger *zap.Logger) *app {
	return &app{
		srv: &http.Server{Addr: cfg.HTTPAddr, Handler: r},
		rm:  rm,
		log: logger,
	}
}
