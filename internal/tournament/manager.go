// Package tournament runs series of automated duels and tallies the
// results. Each game in a series gets its own state and a derived seed, so
// a series is reproducible from its base seed alone.
package tournament

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/config"
	"github.com/emberforge/ember-server-go/internal/content"
	"github.com/emberforge/ember-server-go/internal/game/state"
	"github.com/emberforge/ember-server-go/internal/sim"
)

// GameResult is one finished duel.
type GameResult struct {
	Seed     int64
	Winner   string
	Turns    int
	Checksum string
}

// SeriesResult aggregates a series.
type SeriesResult struct {
	Games []GameResult
	Wins  map[string]int
	Draws int
}

// Manager runs duel series over a fixed content set.
type Manager struct {
	logger   *zap.Logger
	registry *content.Registry
	scripts  map[string]state.Script
}

func NewManager(logger *zap.Logger, registry *content.Registry, scripts map[string]state.Script) *Manager {
	return &Manager{logger: logger, registry: registry, scripts: scripts}
}

// RunSeries plays the configured duel `games` times, bumping the seed per
// game.
func (m *Manager) RunSeries(ctx context.Context, cfg config.GameConfig, games int) (SeriesResult, error) {
	result := SeriesResult{Wins: make(map[string]int)}

	for i := 0; i < games; i++ {
		gameCfg := cfg
		gameCfg.Seed = cfg.Seed + int64(i)

		gs, err := sim.Setup(m.logger, m.registry, m.scripts, gameCfg)
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i, err)
		}
		snap, err := sim.RunDuel(ctx, gs, cfg.MaxTurns)
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i, err)
		}

		gr := GameResult{
			Seed:     gameCfg.Seed,
			Winner:   snap.Winner,
			Turns:    snap.Turn,
			Checksum: snap.Checksum(),
		}
		result.Games = append(result.Games, gr)
		if gr.Winner == "" {
			result.Draws++
		} else {
			result.Wins[gr.Winner]++
		}
		m.logger.Info("game finished",
			zap.Int64("seed", gr.Seed),
			zap.String("winner", gr.Winner),
			zap.Int("turns", gr.Turns),
		)
	}
	return result, nil
}
