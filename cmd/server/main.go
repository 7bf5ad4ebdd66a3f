package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/config"
	"github.com/emberforge/ember-server-go/internal/content"
	"github.com/emberforge/ember-server-go/internal/game/state"
	"github.com/emberforge/ember-server-go/internal/repository"
	"github.com/emberforge/ember-server-go/internal/server"
	"github.com/emberforge/ember-server-go/internal/sets"
	"github.com/emberforge/ember-server-go/internal/sim"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	turnDelay  = flag.Duration("turn-delay", 2*time.Second, "pause between simulated turns")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting ember server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	// Create context that listens for termination signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Load card content
	registry, err := content.Load(cfg.Content.Path)
	if err != nil {
		logger.Fatal("failed to load card content", zap.Error(err))
	}
	logger.Info("card content loaded",
		zap.String("path", cfg.Content.Path),
		zap.Int("cards", registry.Len()),
	)

	// Match persistence is optional; without a database URL the duel is
	// streamed but not stored.
	var matches *repository.MatchRepository
	if cfg.Database.URL != "" {
		db, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("failed to apply database schema", zap.Error(err))
		}

		stats := db.Stats()
		logger.Info("database connection pool initialized",
			zap.Int32("total_conns", stats.TotalConns()),
			zap.Int32("idle_conns", stats.IdleConns()),
		)
		matches = repository.NewMatchRepository(db)
	}

	// Seat the game
	gs, err := sim.Setup(logger, registry, sets.Basic(), cfg.Game)
	if err != nil {
		logger.Fatal("failed to seat game", zap.Error(err))
	}

	matchID := uuid.NewString()
	recorder := state.NewRecorder(matchID, gs.Bus())

	// The game mutates on the driver goroutine; the mutex lets the HTTP
	// handlers take consistent snapshots between turns.
	var mu sync.Mutex
	srv := server.New(cfg.Server, gs.Bus(), func() state.Snapshot {
		mu.Lock()
		defer mu.Unlock()
		return gs.Snapshot()
	}, logger)

	// Drive the duel
	go func() {
		snap, err := sim.Run(ctx, gs, sim.Options{
			MaxTurns:  cfg.Game.MaxTurns,
			TurnDelay: *turnDelay,
			Lock:      &mu,
		})
		recorder.Stop()
		if err != nil {
			logger.Error("duel aborted", zap.Error(err))
			return
		}
		logger.Info("duel finished",
			zap.String("match_id", matchID),
			zap.Int("turns", snap.Turn),
			zap.String("winner", snap.Winner),
			zap.String("checksum", snap.Checksum()),
		)

		if matches == nil {
			return
		}
		saveCtx, cancelSave := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancelSave()
		rec := repository.MatchRecord{
			ID:         matchID,
			Winner:     snap.Winner,
			Turns:      snap.Turn,
			Seed:       cfg.Game.Seed,
			Checksum:   snap.Checksum(),
			FinishedAt: time.Now().UTC(),
		}
		if err := matches.SaveMatch(saveCtx, rec); err != nil {
			logger.Error("failed to save match", zap.Error(err))
			return
		}
		if err := matches.SaveEvents(saveCtx, matchID, recorder.Events()); err != nil {
			logger.Error("failed to save match events", zap.Error(err))
		}
	}()

	// Start spectator server
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Run(ctx)
	}()

	logger.Info("ember server initialized",
		zap.String("version", version),
		zap.String("address", cfg.Server.Address),
		zap.String("match_id", matchID),
	)

	// Wait for termination signal or server failure
	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
		if err := <-serveErr; err != nil {
			logger.Error("server error during shutdown", zap.Error(err))
		}
	case err := <-serveErr:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
		cancel()
	}

	logger.Info("ember server stopped")
}
