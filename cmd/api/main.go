package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/avoronin/matchbook/internal/api"
	"github.com/avoronin/matchbook/internal/infra/logging"
	"github.com/avoronin/matchbook/internal/infra/pgutils"
	"github.com/avoronin/matchbook/internal/infra/redisutil"
	"github.com/avoronin/matchbook/internal/producer"
	"github.com/avoronin/matchbook/internal/repos/matches"
	pgmatches "github.com/avoronin/matchbook/internal/repos/matches/postgres"
	"github.com/avoronin/matchbook/internal/repos/matches/rediscache"
	"github.com/avoronin/matchbook/internal/services/wager"
	"github.com/avoronin/matchbook/pkg/envconf"
	"github.com/avoronin/matchbook/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("close db pool")

		return db.Close()
	})

	var opts []wager.Option

	if cfg.Kafka.Brokers != "" {
		pub := producer.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)

		shutdownqueue.Add(func(context.Context) error {
			slog.Info("close kafka writer")

			return pub.Close()
		})

		opts = append(opts, wager.WithPublisher(pub))
	}

	engine := wager.New(db, opts...)

	// Display reads go through Redis when configured; the engine's own
	// transactions always hit Postgres directly.
	var (
		matchReader matches.Reader = pgmatches.New(db)
		inv         api.MatchCacheInvalidator
	)

	if cfg.Redis.Addr != "" {
		rdb, rerr := redisutil.Open(ctx, cfg.Redis)
		if rerr != nil {
			return fmt.Errorf("open redis: %w", rerr)
		}

		shutdownqueue.Add(func(context.Context) error {
			slog.Info("close redis client")

			return rdb.Close()
		})

		cache := rediscache.New(matchReader, rdb, cfg.Redis.MatchTTL)
		matchReader = cache
		inv = cache
	}

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, api.NewRouter(engine, matchReader, inv))

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
