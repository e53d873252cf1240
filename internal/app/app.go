package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rshah731/starting5/internal/config"
	"github.com/rshah731/starting5/internal/db/repository"
	"github.com/rshah731/starting5/internal/game"
	"github.com/rshah731/starting5/internal/logging"
	"github.com/rshah731/starting5/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, Postgres, Redis, the category catalog and the
// HTTP server. The catalog is an immutable snapshot taken once here, so both
// the generator and the matcher see the same team names with no lazy loading.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	puzzleRepo := repository.NewPuzzleRepository(pool)
	playerRepo := repository.NewPlayerRepository(pool)

	teamNames, err := playerRepo.GetAllTeamNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("load team names: %w", err)
	}
	catalog, err := game.NewCatalog(teamNames)
	if err != nil {
		return nil, fmt.Errorf("build category catalog: %w", err)
	}
	logger.Info().Int("teams", len(teamNames)).Int("labels", catalog.Size()).Msg("category catalog built")

	puzzleCache := game.NewCache(redisClient, cfg.Game.PuzzleCacheTTL)
	generator := game.NewGenerator(puzzleRepo, puzzleCache, catalog, logger)
	matcher := game.NewMatcher(catalog, game.MatcherOptions{BasePoints: cfg.Game.BasePoints})
	gameSvc := game.NewService(generator, matcher, playerRepo, logger)

	handlers := server.NewHandlers(gameSvc, playerRepo, catalog, logger)
	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, handlers)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
