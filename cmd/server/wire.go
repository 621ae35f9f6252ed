//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"monad-minesweeper/internal/config"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp builds the minesweeper server.
func wireApp(config.Config, *zap.Logger) (*app, func(), error) {
	panic(wire.Build(ProviderSet))
}
