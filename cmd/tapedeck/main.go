package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Overland-East-Bay/tapedeck/internal/adapters/fscassette"
	"github.com/Overland-East-Bay/tapedeck/internal/adapters/httpapi"
	"github.com/Overland-East-Bay/tapedeck/internal/adapters/postgres"
	pgcassette "github.com/Overland-East-Bay/tapedeck/internal/adapters/postgres/cassettestore"
	"github.com/Overland-East-Bay/tapedeck/internal/domain"
	platformclock "github.com/Overland-East-Bay/tapedeck/internal/platform/clock"
	"github.com/Overland-East-Bay/tapedeck/internal/platform/config"
	"github.com/Overland-East-Bay/tapedeck/internal/ports/out/cassettestore"
)

const usage = `usage: tapedeck <command>

commands:
  list            list saved cassettes
  show <name>     print a cassette's tracks as JSON
  verify          load every cassette and report corruption
  serve           run the cassette inspector HTTP server

Backend selection and paths come from the environment (TAPEDECK_DIR,
TAPEDECK_BACKEND, DATABASE_URL, TAPEDECK_LISTEN); a .env file is honored.`

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("open cassette store", zap.Error(err))
	}
	if cleanup != nil {
		defer cleanup()
	}

	switch os.Args[1] {
	case "list":
		err = runList(ctx, store)
	case "show":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "usage: tapedeck show <name>")
			os.Exit(2)
		}
		err = runShow(ctx, store, os.Args[2])
	case "verify":
		err = runVerify(ctx, store)
	case "serve":
		err = runServe(cfg, store, logger)
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("command failed", zap.String("command", os.Args[1]), zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config) (cassettestore.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			return nil, nil, err
		}
		return pgcassette.NewStore(pool, platformclock.NewSystemClock()), pool.Close, nil
	default:
		return fscassette.NewStore(cfg.BaseDir), nil, nil
	}
}

func runList(ctx context.Context, store cassettestore.Store) error {
	names, err := store.List(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(string(name))
	}
	return nil
}

func runShow(ctx context.Context, store cassettestore.Store, name string) error {
	cassette, err := store.Load(ctx, domain.CassetteName(name))
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(cassette, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runVerify(ctx context.Context, store cassettestore.Store) error {
	names, err := store.List(ctx)
	if err != nil {
		return err
	}
	bad := 0
	for _, name := range names {
		if _, err := store.Load(ctx, name); err != nil {
			bad++
			fmt.Printf("%s: %v\n", string(name), err)
			continue
		}
		fmt.Printf("%s: ok\n", string(name))
	}
	if bad > 0 {
		return fmt.Errorf("%d corrupt cassette(s)", bad)
	}
	return nil
}

func runServe(cfg config.Config, store cassettestore.Store, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           httpapi.NewRouter(store),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("inspector listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
