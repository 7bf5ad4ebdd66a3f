// Command simulate runs headless duels: a single recorded game, or a
// multi-game series with derived seeds for reproducibility checks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/config"
	"github.com/emberforge/ember-server-go/internal/content"
	"github.com/emberforge/ember-server-go/internal/game/state"
	"github.com/emberforge/ember-server-go/internal/sets"
	"github.com/emberforge/ember-server-go/internal/sim"
	"github.com/emberforge/ember-server-go/internal/tournament"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	games      = flag.Int("games", 1, "number of games to run")
	replayDir  = flag.String("replay-dir", "", "directory for the replay of a single game")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := content.Load(cfg.Content.Path)
	if err != nil {
		logger.Fatal("failed to load card content", zap.Error(err))
	}

	if *games > 1 {
		runSeries(ctx, logger, registry, cfg)
		return
	}
	runSingle(ctx, logger, registry, cfg)
}

func runSeries(ctx context.Context, logger *zap.Logger, registry *content.Registry, cfg *config.Config) {
	mgr := tournament.NewManager(logger, registry, sets.Basic())
	res, err := mgr.RunSeries(ctx, cfg.Game, *games)
	if err != nil {
		logger.Fatal("series failed", zap.Error(err))
	}

	fmt.Printf("series of %d games (base seed %d):\n", len(res.Games), cfg.Game.Seed)
	for name, wins := range res.Wins {
		fmt.Printf("  %s: %d wins\n", name, wins)
	}
	if res.Draws > 0 {
		fmt.Printf("  draws: %d\n", res.Draws)
	}
}

func runSingle(ctx context.Context, logger *zap.Logger, registry *content.Registry, cfg *config.Config) {
	gs, err := sim.Setup(logger, registry, sets.Basic(), cfg.Game)
	if err != nil {
		logger.Fatal("failed to seat game", zap.Error(err))
	}

	matchID := uuid.NewString()
	recorder := state.NewRecorder(matchID, gs.Bus())

	snap, err := sim.RunDuel(ctx, gs, cfg.Game.MaxTurns)
	recorder.Stop()
	if err != nil {
		logger.Fatal("duel failed", zap.Error(err))
	}

	winner := snap.Winner
	if winner == "" {
		winner = "draw"
	}
	fmt.Printf("game %s: %s after %d turns (%d events)\n",
		matchID, winner, snap.Turn, recorder.Size())
	fmt.Printf("checksum: %s\n", snap.Checksum())

	if *replayDir != "" {
		if err := recorder.Save(*replayDir); err != nil {
			logger.Fatal("failed to save replay", zap.Error(err))
		}
		fmt.Printf("replay saved to %s\n", *replayDir)
	}
}
