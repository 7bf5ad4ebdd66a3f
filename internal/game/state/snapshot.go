package state

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/emberforge/ember-server-go/internal/game"
	"github.com/emberforge/ember-server-go/internal/game/selector"
)

// CardSnapshot is the serialized view of one in-play card.
type CardSnapshot struct {
	CardID string `json:"card_id"`
	Name   string `json:"name"`
	Attack int    `json:"attack"`
	Health int    `json:"health"`
	Damage int    `json:"damage"`
}

// PlayerSnapshot is the serialized view of one seat.
type PlayerSnapshot struct {
	Name          string         `json:"name"`
	Hero          string         `json:"hero"`
	HeroHealth    int            `json:"hero_health"`
	MaxMana       int            `json:"max_mana"`
	HandSize      int            `json:"hand_size"`
	DeckSize      int            `json:"deck_size"`
	GraveyardSize int            `json:"graveyard_size"`
	Board         []CardSnapshot `json:"board"`
}

// Snapshot is a point-in-time serialization of a game, used for match
// persistence and divergence checks between runs of the same seed.
type Snapshot struct {
	Turn    int              `json:"turn"`
	Current string           `json:"current,omitempty"`
	Over    bool             `json:"over"`
	Winner  string           `json:"winner,omitempty"`
	Players []PlayerSnapshot `json:"players"`
}

// Snapshot captures the current game state. Board order is preserved;
// hidden zones are reduced to counts.
func (gs *GameState) Snapshot() Snapshot {
	s := Snapshot{Turn: gs.turn, Over: gs.over}
	if gs.current != nil {
		s.Current = gs.current.Name()
	}
	if gs.winner != nil {
		s.Winner = gs.winner.Name()
	}
	for _, p := range gs.players {
		ps := PlayerSnapshot{
			Name:     p.Name(),
			MaxMana:  p.maxMana,
			HandSize: len(p.hand),
			DeckSize: len(p.deck),
		}
		if p.hero != nil {
			ps.Hero = p.hero.cardID
			ps.HeroHealth = p.hero.CurrentHealth()
		}
		for _, m := range p.board {
			ps.Board = append(ps.Board, CardSnapshot{
				CardID: m.cardID,
				Name:   m.Name(),
				Attack: m.Attack(),
				Health: m.Health(),
				Damage: m.DamageTaken(),
			})
		}
		for _, e := range gs.entities {
			if e.Zone() == selector.ZoneGraveyard && e.Controller() == game.Entity(p) {
				ps.GraveyardSize++
			}
		}
		s.Players = append(s.Players, ps)
	}
	return s
}

// Canonical renders the snapshot as a deterministic line-oriented string,
// independent of map iteration order.
func (s Snapshot) Canonical() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "GAME:%d|%s|%t|%s\n", s.Turn, s.Current, s.Over, s.Winner)
	for _, p := range s.Players {
		fmt.Fprintf(&buf, "PLAYER:%s|%s|%d|%d|%d|%d|%d\n",
			p.Name, p.Hero, p.HeroHealth, p.MaxMana,
			p.HandSize, p.DeckSize, p.GraveyardSize)
		for _, c := range p.Board {
			fmt.Fprintf(&buf, "  BOARD:%s|%d|%d|%d\n", c.CardID, c.Attack, c.Health, c.Damage)
		}
	}
	return buf.String()
}

// Checksum is the SHA-256 of the canonical rendering.
func (s Snapshot) Checksum() string {
	sum := sha256.Sum256([]byte(s.Canonical()))
	return hex.EncodeToString(sum[:])
}
