package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"userResourceService/internal/config"
	"userResourceService/internal/db"
	grpcserver "userResourceService/internal/grpc"
	"userResourceService/internal/httpapi"
	"userResourceService/internal/logging"
	"userResourceService/internal/service"
	"userResourceService/repository"
)

const shutdownTimeout = 5 * time.Second

type serveFlags struct {
	addr      string
	grpcAddr  string
	store     string
	dsn       string
	seed      bool
	rateLimit int
}

func newServeCmd() *cobra.Command {
	var f serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and the gRPC health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := f.apply(cmd.Flags(), cfg); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, logging.New(cfg.Log))
		},
	}
	f.bind(cmd.Flags())
	return cmd
}

func (f *serveFlags) bind(fl *pflag.FlagSet) {
	fl.StringVarP(&f.addr, "addr", "a", "", "HTTP listen address (overrides HTTP_ADDRESS)")
	fl.StringVar(&f.grpcAddr, "grpc-addr", "", "gRPC health listen address, empty disables (overrides GRPC_ADDRESS)")
	fl.StringVar(&f.store, "store", "", "store backend: memory or sqlite (overrides STORE_BACKEND)")
	fl.StringVar(&f.dsn, "dsn", "", "SQLite DSN (overrides DB_PATH)")
	fl.BoolVar(&f.seed, "seed", true, "load fixture users at startup (overrides STORE_SEED)")
	fl.IntVar(&f.rateLimit, "rate-limit", 0, "requests per second per client, 0 disables (overrides HTTP_RATE_LIMIT)")
}

// apply copies explicitly set flags over cfg and revalidates it.
func (f *serveFlags) apply(fl *pflag.FlagSet, cfg *config.Config) error {
	if fl.Changed("addr") {
		cfg.HTTP.Address = f.addr
	}
	if fl.Changed("grpc-addr") {
		cfg.GRPC.Address = f.grpcAddr
	}
	if fl.Changed("store") {
		cfg.Store.Backend = f.store
	}
	if fl.Changed("dsn") {
		cfg.Store.DSN = f.dsn
	}
	if fl.Changed("seed") {
		cfg.Store.Seed = f.seed
	}
	if fl.Changed("rate-limit") {
		cfg.HTTP.RateLimit = f.rateLimit
	}
	return cfg.Validate()
}

// serve runs both listeners until ctx is cancelled.
func serve(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	log.Info().Str("config", cfg.String()).Msg("configuration loaded")

	users, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error().Err(err).Msg("close store")
		}
	}()

	svc := service.NewUserService(users, log)
	router := httpapi.NewRouter(svc, log, httpapi.Options{RateLimit: cfg.HTTP.RateLimit})
	httpAddr, stopHTTP, err := httpapi.StartHTTP(cfg.HTTP.Address, router, log)
	if err != nil {
		return fmt.Errorf("start http: %w", err)
	}
	log.Info().Str("addr", httpAddr.String()).Msg("http server listening")

	stopGRPC := func(context.Context) error { return nil }
	if cfg.GRPC.Address != "" {
		grpcAddr, stop, err := grpcserver.StartGRPC(cfg.GRPC.Address, log)
		if err != nil {
			_ = stopHTTP(context.Background())
			return fmt.Errorf("start grpc: %w", err)
		}
		stopGRPC = stop
		log.Info().Str("addr", grpcAddr.String()).Msg("grpc health server listening")
	}

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := stopGRPC(sctx); err != nil {
		log.Error().Err(err).Msg("grpc shutdown")
	}
	if err := stopHTTP(sctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
		return err
	}
	return nil
}

// openStore builds the configured user store and seeds it when asked.
func openStore(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (repository.UserRepositoryI, func() error, error) {
	var (
		users     repository.UserRepositoryI
		closeFunc = func() error { return nil }
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		d, err := db.Open(cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
		users = repository.NewUserRepository(d)
		closeFunc = d.Close
	default:
		users = repository.NewMemoryUserRepository()
	}
	if cfg.Seed {
		if err := repository.Seed(ctx, users); err != nil {
			_ = closeFunc()
			return nil, nil, fmt.Errorf("seed users: %w", err)
		}
		log.Info().Str("backend", cfg.Backend).Int("count", len(repository.SeedUsers())).Msg("store seeded")
	}
	return users, closeFunc, nil
}
