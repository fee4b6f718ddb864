//go:build !zmq

package main

import (
	"context"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"go.uber.org/zap"
)

// startBlockSignal returns no signal; the engine watching chain falls back to polling.
func startBlockSignal(_ context.Context, chain model.Chain, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr != "" {
		logger.Warn("zmq address ignored: binary built without the zmq tag",
			zap.String("chain", string(chain)), zap.String("addr", addr))
	}
	return nil, nil
}
