// Package main runs the peg scanner and the federation auditor against an
// Elements node and a Bitcoin node.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/pegaudit-backend/internal/metrics"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/bitcoin"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/elements"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/repository/sqlite"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/service/auditor"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/service/scanner"
	observed "github.com/goodnatureofminers/pegaudit-backend/internal/pkg/btcd/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type config struct {
	SQLiteDSN string        `long:"sqlite-dsn" env:"PEG_AUDITOR_SQLITE_DSN" description:"SQLite database path" default:"pegaudit.db?_busy_timeout=5000"`
	Network   model.Network `long:"network" env:"PEG_AUDITOR_NETWORK" description:"base chain network (mainnet, testnet, regtest)" default:"mainnet"`

	ElementsRPCURL      string `long:"elements-rpc-url" env:"PEG_AUDITOR_ELEMENTS_RPC_URL" description:"Elements RPC URL" default:"http://127.0.0.1:7041"`
	ElementsRPCUser     string `long:"elements-rpc-user" env:"PEG_AUDITOR_ELEMENTS_RPC_USER" description:"Elements RPC username"`
	ElementsRPCPassword string `long:"elements-rpc-password" env:"PEG_AUDITOR_ELEMENTS_RPC_PASSWORD" description:"Elements RPC password"`
	ElementsZMQAddr     string `long:"elements-zmq-addr" env:"PEG_AUDITOR_ELEMENTS_ZMQ_ADDR" description:"Elements zmq hashblock endpoint"`

	BitcoinRPCURL      string `long:"bitcoin-rpc-url" env:"PEG_AUDITOR_BITCOIN_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	BitcoinRPCUser     string `long:"bitcoin-rpc-user" env:"PEG_AUDITOR_BITCOIN_RPC_USER" description:"Bitcoin RPC username"`
	BitcoinRPCPassword string `long:"bitcoin-rpc-password" env:"PEG_AUDITOR_BITCOIN_RPC_PASSWORD" description:"Bitcoin RPC password"`
	BitcoinZMQAddr     string `long:"bitcoin-zmq-addr" env:"PEG_AUDITOR_BITCOIN_ZMQ_ADDR" description:"Bitcoin zmq hashblock endpoint"`

	RPCRequestsPerSecond int `long:"rpc-rps" env:"PEG_AUDITOR_RPC_RPS" description:"max RPC requests per second per node, 0 disables throttling" default:"50"`
	RPCWorkers           int `long:"rpc-workers" env:"PEG_AUDITOR_RPC_WORKERS" description:"concurrent lookups per block" default:"4"`

	NativeAsset        string        `long:"native-asset" env:"PEG_AUDITOR_NATIVE_ASSET" description:"side-chain asset id whose burns are peg-outs (L-BTC on Liquid mainnet by default)" default:"6f0279e9ed041c3d710a9f57d0c02928416460c4b722ae3457a11eec381c526d"`
	ChangeAddresses    []string      `long:"change-address" env:"PEG_AUDITOR_CHANGE_ADDRESSES" env-delim:"," description:"federation change address (repeatable)"`
	ConfirmationOffset uint64        `long:"confirmation-offset" env:"PEG_AUDITOR_CONFIRMATION_OFFSET" description:"blocks the audit stays behind the base chain tip; 0 means the default of 1" default:"1"`
	FastPathWindow     uint64        `long:"fast-path-window" env:"PEG_AUDITOR_FAST_PATH_WINDOW" description:"distance from the confirmed tip using utxo existence checks; 0 means the default of 150" default:"150"`
	SideBaseline       uint64        `long:"side-baseline" env:"PEG_AUDITOR_SIDE_BASELINE" description:"side chain height the scan starts after on an empty ledger"`
	BaseBaseline       uint64        `long:"base-baseline" env:"PEG_AUDITOR_BASE_BASELINE" description:"base chain height the audit starts after on an empty ledger"`
	PollInterval       time.Duration `long:"poll-interval" env:"PEG_AUDITOR_POLL_INTERVAL" description:"re-run interval without a block signal" default:"30s"`

	MetricsAddr string `long:"metrics-addr" env:"PEG_AUDITOR_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("failed to load .env", zap.Error(err))
	}
	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("peg auditor failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := sqlite.NewRepository(cfg.SQLiteDSN, metrics.NewSQLiteRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()
	if err := repo.EnsureProgress(ctx, model.ProgressSideChainHeight, cfg.SideBaseline); err != nil {
		return fmt.Errorf("seed side chain cursor: %w", err)
	}
	if err := repo.EnsureProgress(ctx, model.ProgressBaseChainAudit, cfg.BaseBaseline); err != nil {
		return fmt.Errorf("seed audit cursor: %w", err)
	}

	elementsRPC, err := newRPCClient(cfg.ElementsRPCURL, cfg.ElementsRPCUser, cfg.ElementsRPCPassword)
	if err != nil {
		return fmt.Errorf("init elements rpc client: %w", err)
	}
	defer func() {
		elementsRPC.Shutdown()
		elementsRPC.WaitForShutdown()
	}()
	bitcoinRPC, err := newRPCClient(cfg.BitcoinRPCURL, cfg.BitcoinRPCUser, cfg.BitcoinRPCPassword)
	if err != nil {
		return fmt.Errorf("init bitcoin rpc client: %w", err)
	}
	defer func() {
		bitcoinRPC.Shutdown()
		bitcoinRPC.WaitForShutdown()
	}()

	side := elements.NewClient(observed.NewObservedClient(
		elementsRPC, metrics.NewRPCClient(model.SideChain, cfg.Network), cfg.RPCRequestsPerSecond,
	))
	base, err := bitcoin.NewClient(observed.NewObservedClient(
		bitcoinRPC, metrics.NewRPCClient(model.BaseChain, cfg.Network), cfg.RPCRequestsPerSecond,
	), cfg.Network)
	if err != nil {
		return fmt.Errorf("init bitcoin client: %w", err)
	}

	sideSignal, err := startBlockSignal(ctx, model.SideChain, cfg.ElementsZMQAddr, logger)
	if err != nil {
		return err
	}
	baseSignal, err := startBlockSignal(ctx, model.BaseChain, cfg.BitcoinZMQAddr, logger)
	if err != nil {
		return err
	}

	pegScanner, err := scanner.NewService(
		scanner.Config{NativeAsset: cfg.NativeAsset, Workers: cfg.RPCWorkers, PollInterval: cfg.PollInterval},
		side,
		base,
		repo,
		metrics.NewPegScanner(cfg.Network),
		logger.Named("peg_scanner"),
		sideSignal,
	)
	if err != nil {
		return err
	}
	federationAuditor, err := auditor.NewService(
		auditor.Config{
			ChangeAddresses:    cfg.ChangeAddresses,
			ConfirmationOffset: cfg.ConfirmationOffset,
			FastPathWindow:     cfg.FastPathWindow,
			Workers:            cfg.RPCWorkers,
			PollInterval:       cfg.PollInterval,
		},
		base,
		repo,
		metrics.NewFederationAuditor(cfg.Network),
		logger.Named("federation_auditor"),
		baseSignal,
	)
	if err != nil {
		return err
	}
	if len(cfg.ChangeAddresses) == 0 {
		logger.Warn("no federation change addresses configured; reserves only track peg-in deposits")
	}

	logger.Info("starting peg auditor",
		zap.String("network", string(cfg.Network)),
		zap.Uint64("side_baseline", cfg.SideBaseline),
		zap.Uint64("base_baseline", cfg.BaseBaseline),
	)
	return runLoops(ctx, pegScanner.Loop, federationAuditor.Loop)
}

// runLoops runs every loop until ctx is canceled and returns the first error.
func runLoops(ctx context.Context, loops ...func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for _, loop := range loops {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := loop(ctx); err != nil {
				once.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}()
	}
	wg.Wait()
	return firstErr
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
