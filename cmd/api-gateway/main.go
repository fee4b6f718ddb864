package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/pegaudit-backend/internal/metrics"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/bitcoin"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/model"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/repository/sqlite"
	"github.com/goodnatureofminers/pegaudit-backend/internal/peg/service/reporting"
	observed "github.com/goodnatureofminers/pegaudit-backend/internal/pkg/btcd/rpcclient"
	"github.com/goodnatureofminers/pegaudit-backend/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

var config struct {
	RestAddr             string        `long:"rest-addr" env:"API_GATEWAY_REST_ADDR" description:"rest addr" default:":8001"`
	SQLiteDSN            string        `long:"sqlite-dsn" env:"API_GATEWAY_SQLITE_DSN" description:"SQLite database path" default:"pegaudit.db?_busy_timeout=5000"`
	Network              model.Network `long:"network" env:"API_GATEWAY_NETWORK" description:"base chain network" default:"mainnet"`
	BitcoinRPCURL        string        `long:"bitcoin-rpc-url" env:"API_GATEWAY_BITCOIN_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	BitcoinRPCUser       string        `long:"bitcoin-rpc-user" env:"API_GATEWAY_BITCOIN_RPC_USER" description:"Bitcoin RPC username"`
	BitcoinRPCPassword   string        `long:"bitcoin-rpc-password" env:"API_GATEWAY_BITCOIN_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRequestsPerSecond int           `long:"rpc-rps" env:"API_GATEWAY_RPC_RPS" description:"max RPC requests per second, 0 disables throttling" default:"20"`
}

func main() {
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
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	repo, err := sqlite.NewRepository(config.SQLiteDSN, metrics.NewSQLiteRepository())
	if err != nil {
		logger.Fatal("Init repository", zap.Error(err))
	}
	defer func() {
		_ = repo.Close()
	}()

	rpcClient, err := newRPCClient(config.BitcoinRPCURL, config.BitcoinRPCUser, config.BitcoinRPCPassword)
	if err != nil {
		logger.Fatal("Init bitcoin rpc client", zap.Error(err))
	}
	defer func() {
		rpcClient.Shutdown()
		rpcClient.WaitForShutdown()
	}()
	base, err := bitcoin.NewClient(observed.NewObservedClient(
		rpcClient, metrics.NewRPCClient(model.BaseChain, config.Network), config.RPCRequestsPerSecond,
	), config.Network)
	if err != nil {
		logger.Fatal("Init bitcoin client", zap.Error(err))
	}

	router := transport.NewLiquidHandler(reporting.NewService(repo, base), logger.Named("read_api")).Router()
	router.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              config.RestAddr,
		Handler:           cors.Default().Handler(router),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.RestAddr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
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
