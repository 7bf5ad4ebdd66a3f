// Package sets binds scripted behavior to the shipped card content. Each
// script is keyed by content identifier and composed entirely from the
// action and selector vocabulary; the stat lines live in the YAML content
// file.
package sets

import (
	"github.com/emberforge/ember-server-go/internal/game"
	"github.com/emberforge/ember-server-go/internal/game/selector"
	"github.com/emberforge/ember-server-go/internal/game/state"
)

// Basic returns the scripts for the starter set.
func Basic() map[string]state.Script {
	return map[string]state.Script{
		// Battlecry: draw a card.
		"NOVICE_ENGINEER": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{game.Draw(selector.Controller)}
			},
		},
		"GNOMISH_INVENTOR": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{game.Draw(selector.Controller)}
			},
		},

		// Battlecry: deal 1 damage.
		"ELVEN_ARCHER": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{game.Damage(selector.TargetEntity, 1)}
			},
		},

		// Battlecry: restore 2 health.
		"VOODOO_DOCTOR": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{game.Heal(selector.TargetEntity, 2)}
			},
		},

		// Deathrattle: draw a card.
		"LOOT_HOARDER": {
			Deathrattles: []game.Followup{
				game.Draw(selector.Controller),
			},
		},

		// Whenever this minion takes damage, draw a card.
		"ACOLYTE_OF_PAIN": {
			Events: func(self game.Entity) []*game.Registration {
				return []*game.Registration{
					game.On(game.Damage(selector.Self, 0),
						game.Draw(selector.Controller)),
				}
			},
		},

		"MOONFIRE": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{game.Damage(selector.TargetEntity, 1)}
			},
		},
		"FROSTBOLT": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{
					game.Hit(selector.TargetEntity, 3),
					game.Freeze(selector.TargetEntity),
				}
			},
		},
		"ARCANE_MISSILES": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{
					game.Times(game.Damage(selector.RandomEnemyCharacter(), 1), 3),
				}
			},
		},
		"ARCANE_INTELLECT": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{game.Times(game.Draw(selector.Controller), 2)}
			},
		},
		"HOLY_LIGHT": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{game.Heal(selector.TargetEntity, 6)}
			},
		},
		"CONSECRATION": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{game.Damage(selector.EnemyCharacters, 2)}
			},
		},
		"BLESSING_OF_MIGHT": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{
					game.Buff(selector.TargetEntity, "ENCH_BLESSING_OF_MIGHT"),
				}
			},
		},

		// Choose One: deal 3 damage, or deal 1 damage and draw a card.
		"WRATH_HEAVY": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{game.Damage(selector.TargetEntity, 3)}
			},
		},
		"WRATH_LIGHT": {
			Play: func(self game.Entity) []game.Action {
				return []game.Action{
					game.Damage(selector.TargetEntity, 1),
					game.Draw(selector.Controller),
				}
			},
		},

		// Secret: when a friendly minion dies, give a random friendly minion
		// +3/+2. The pattern deliberately carries no zone test: the dead
		// minion has already left play when the trigger matches.
		"AVENGE": {
			Events: func(self game.Entity) []*game.Registration {
				return []*game.Registration{
					game.Once(
						game.Death(selector.AndOf(selector.Friendly, selector.Minion)),
						game.Buff(selector.RandomFriendlyMinion(), "ENCH_AVENGE"),
					).InZone(selector.ZoneSecret),
				}
			},
		},
	}
}
