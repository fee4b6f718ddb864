//go:build zmq

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/pebbe/zmq4"
	"go.uber.org/zap"
)

const hashBlockTopic = "hashblock"

// startBlockSignal wakes the engine watching chain whenever its node announces
// a new block. Announcements that arrive while one is pending are merged.
func startBlockSignal(ctx context.Context, chain model.Chain, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}
	logger = logger.Named(string(chain)+"_zmq").With(zap.String("chain", string(chain)), zap.String("addr", addr))

	sub, err := subscribeHashBlock(addr)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s hashblock at %s: %w", chain, addr, err)
	}

	tip := make(chan struct{}, 1)
	go relayHashBlocks(ctx, sub, tip, logger)

	logger.Info("listening for new blocks")
	return tip, nil
}

// relayHashBlocks forwards hashblock announcements to tip until ctx ends.
func relayHashBlocks(ctx context.Context, sub *zmq4.Socket, tip chan<- struct{}, logger *zap.Logger) {
	defer sub.Close()
	for ctx.Err() == nil {
		parts, err := sub.RecvMessageBytes(0)
		if err != nil {
			logger.Warn("hashblock receive failed", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		// topic, 32-byte block hash, sequence number
		if len(parts) < 2 || len(parts[1]) != 32 {
			logger.Warn("skip malformed hashblock announcement", zap.Int("parts", len(parts)))
			continue
		}
		logger.Debug("new block announced", zap.String("hash", hex.EncodeToString(parts[1])))

		select {
		case tip <- struct{}{}:
		default:
		}
	}
}

func subscribeHashBlock(addr string) (*zmq4.Socket, error) {
	sub, err := zmq4.NewSocket(zmq4.SUB)
	if err != nil {
		return nil, err
	}
	if err := sub.SetSubscribe(hashBlockTopic); err != nil {
		sub.Close()
		return nil, err
	}
	if err := sub.Connect(addr); err != nil {
		sub.Close()
		return nil, err
	}
	return sub, nil
}
