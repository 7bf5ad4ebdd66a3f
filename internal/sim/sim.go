// Package sim drives automated duels through the action pipeline. It is
// the engine's built-in opponent-less driver, used by the spectator server,
// the simulator command, and series runs: greedy card plays followed by
// all-out attacks on the enemy hero.
package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/config"
	"github.com/emberforge/ember-server-go/internal/content"
	"github.com/emberforge/ember-server-go/internal/game"
	"github.com/emberforge/ember-server-go/internal/game/selector"
	"github.com/emberforge/ember-server-go/internal/game/state"
)

// Setup builds a game seated per the config.
func Setup(logger *zap.Logger, registry *content.Registry, scripts map[string]state.Script, cfg config.GameConfig) (*state.GameState, error) {
	if len(cfg.Players) != 2 {
		return nil, fmt.Errorf("a duel needs exactly two players, got %d", len(cfg.Players))
	}
	gs := state.New(logger, registry, scripts, cfg.Seed)
	for _, pc := range cfg.Players {
		p, err := gs.AddPlayer(pc.Name, pc.Hero, pc.Deck)
		if err != nil {
			return nil, fmt.Errorf("seat player %s: %w", pc.Name, err)
		}
		p.ShuffleDeck()
	}
	return gs, nil
}

// Options tune a driven duel.
type Options struct {
	MaxTurns int

	// TurnDelay pauses between turns, for live spectating.
	TurnDelay time.Duration

	// Lock, when set, is held while the game mutates so another goroutine
	// can take consistent snapshots between turns.
	Lock sync.Locker
}

// RunDuel plays alternating turns until a hero dies or maxTurns elapse,
// and returns the final snapshot.
func RunDuel(ctx context.Context, gs *state.GameState, maxTurns int) (state.Snapshot, error) {
	return Run(ctx, gs, Options{MaxTurns: maxTurns})
}

// Run plays a duel per the options.
func Run(ctx context.Context, gs *state.GameState, opts Options) (state.Snapshot, error) {
	players := gs.Players()
	if len(players) != 2 {
		return state.Snapshot{}, fmt.Errorf("a duel needs exactly two players, got %d", len(players))
	}

	for turn := 0; turn < opts.MaxTurns && !gs.Over(); turn++ {
		if err := ctx.Err(); err != nil {
			return snapshot(gs, opts), err
		}
		p, opp := players[turn%2], players[(turn+1)%2]

		if err := playTurn(gs, opts, p, opp); err != nil {
			return snapshot(gs, opts), err
		}

		if opts.TurnDelay > 0 {
			select {
			case <-time.After(opts.TurnDelay):
			case <-ctx.Done():
				return snapshot(gs, opts), ctx.Err()
			}
		}
	}
	return snapshot(gs, opts), nil
}

func playTurn(gs *state.GameState, opts Options, p, opp *state.Player) error {
	if opts.Lock != nil {
		opts.Lock.Lock()
		defer opts.Lock.Unlock()
	}

	if err := gs.Perform(p, game.BeginTurn(p)); err != nil {
		return fmt.Errorf("begin turn: %w", err)
	}
	if gs.Over() {
		return nil
	}
	if err := playCards(gs, p, opp); err != nil {
		return fmt.Errorf("play cards: %w", err)
	}
	if gs.Over() {
		return nil
	}
	if err := attackAll(gs, p, opp); err != nil {
		return fmt.Errorf("attack: %w", err)
	}
	if gs.Over() {
		return nil
	}
	if err := gs.Perform(p, game.EndTurn(p)); err != nil {
		return fmt.Errorf("end turn: %w", err)
	}
	return nil
}

func snapshot(gs *state.GameState, opts Options) state.Snapshot {
	if opts.Lock != nil {
		opts.Lock.Lock()
		defer opts.Lock.Unlock()
	}
	return gs.Snapshot()
}

// playCards greedily plays the first affordable card until nothing in hand
// fits the remaining mana. Targeting cards aim at the enemy hero.
func playCards(gs *state.GameState, p, opp *state.Player) error {
	for {
		var pick game.Entity
		for _, e := range p.Hand() {
			c, ok := e.(*state.Card)
			if !ok || c.Cost() > p.Mana() {
				continue
			}
			if c.Type() == selector.TypeMinion && len(p.Board()) >= 7 {
				continue
			}
			pick = e
			break
		}
		if pick == nil {
			return nil
		}

		card := pick.(*state.Card)
		var target game.Entity
		if card.RequiresTarget() {
			target = opp.Hero()
		}
		choose := ""
		if opts := card.ChooseOptions(); len(opts) > 0 {
			choose = opts[0]
		}
		if err := gs.Perform(p, game.Play(pick, target, choose)); err != nil {
			return err
		}
		if gs.Over() {
			return nil
		}
	}
}

// attackAll sends every able minion at the enemy hero.
func attackAll(gs *state.GameState, p, opp *state.Player) error {
	for _, e := range p.Board() {
		m, ok := e.(*state.Card)
		if !ok || m.Attack() <= 0 || m.Dead() {
			continue
		}
		if m.Tag(selector.TagFrozen) != 0 || m.Tag(selector.TagCantAttack) != 0 {
			continue
		}
		defender := opp.Hero()
		if defender == nil {
			return nil
		}
		if err := gs.Perform(p, game.Attack(m, defender)); err != nil {
			return err
		}
		if gs.Over() {
			return nil
		}
	}
	return nil
}
