// Package game implements the action-resolution and triggered-effect core
// of the rules engine: the effect vocabulary, trigger registrations with
// broadcast and gather dispatch, lazy condition evaluators, and deferred
// card-argument resolution. Targets are picked through the selector
// interpreter in the selector subpackage.
//
// The package owns no game state: it drives state through the Game
// collaborator interface and the entity contracts below. A reference
// implementation lives in the state subpackage.
package game

import (
	"errors"
	"math/rand"

	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/content"
	"github.com/emberforge/ember-server-go/internal/game/selector"
)

// Entity is the read-only accessor contract shared with the selector
// interpreter.
type Entity = selector.Entity

// Precondition violations. These indicate malformed content or a
// caller-side rules violation; they abort the current resolution and
// propagate to the external driver without any retry.
var (
	ErrNoTarget      = errors.New("targetable card played without a target")
	ErrInvalidChoice = errors.New("invalid alternate-mode choice")
	ErrSwapArity     = errors.New("swap requires exactly one other entity")
	ErrNotCharacter  = errors.New("target is not a character")
	ErrNotPlayer     = errors.New("target is not a player")
	ErrNotCard       = errors.New("target is not a card")
)

// Game is the external game-state collaborator every action resolves
// against. Execution is single-threaded and cooperative: QueueActions only
// appends to the driver's pending-effects list, it never runs anything.
type Game interface {
	// Entities enumerates every entity in every zone, including hands and
	// hidden zones, for trigger scanning and selector evaluation.
	Entities() []Entity

	// Card instantiates a fresh entity from a content identifier.
	Card(id string) (Entity, error)

	// FilterCards returns the content identifiers matching the filter,
	// read from the game's explicit content registry.
	FilterCards(f content.Filter) []string

	// QueueActions appends follow-up effects to the pending-effects list
	// owned by the turn driver.
	QueueActions(source Entity, actions []Action)

	// ProcessDeaths resolves every pending death in the play zone.
	ProcessDeaths()

	// ActionStarted and ActionEnded bracket an effect's resolution for the
	// external observer.
	ActionStarted(t Type, source Entity, payload []any)
	ActionEnded(t Type, source Entity, payload []any)

	// Rand is the shared seedable random source.
	Rand() *rand.Rand

	Logger() *zap.Logger

	// Turn-driver transition hooks invoked by game-level actions.
	ResolveAttack(attacker, defender Entity) error
	ResolvePlay(card Entity) error
	StartTurn(player Entity) error
	FinishTurn(player Entity) error
}

// Mutable is the write side of the entity contract.
type Mutable interface {
	Entity
	SetZone(selector.Zone)
	SetController(Entity)
	SetTag(selector.Tag, int)
}

// Listener exposes an entity's trigger registrations for event scanning.
type Listener interface {
	Entity
	Registrations() []*Registration
	Attach(regs ...*Registration)
	RemoveRegistration(*Registration)

	// IgnoreEvents marks entities excluded from trigger scans.
	IgnoreEvents() bool
}

// Card is a playable or content-derived entity.
type Card interface {
	Mutable
	CardID() string
	RequiresTarget() bool
	SetAbilityTarget(Entity)
	ChooseOptions() []string
	SetChosen(Entity)
}

// Character is a damageable in-play entity (minion, hero, weapon).
type Character interface {
	Mutable

	// Hit applies damage through the target's own intake rule, which may
	// transform the amount (armor, immunity). Returns the amount actually
	// applied.
	Hit(source Entity, amount int) int

	DamageTaken() int
	SetDamageTaken(int)
	Health() int
	Destroy()
	Bounce()
	Silence()
	Morph(into Entity)
	ApplyBuff(buff Entity)
	Deathrattles() []Followup
}

// Player is the per-seat entity owning deck, hand, and mana.
type Player interface {
	Mutable

	// Deck returns the player's deck; the top card is the last element.
	Deck() []Entity
	Hand() []Entity

	// Draw moves the top deck card to the hand and returns it.
	Draw() Entity

	// DrawSpecific moves a known deck card to the hand.
	DrawSpecific(card Entity)

	// Fatigue is the modeled event for drawing from an empty deck.
	Fatigue()

	ShuffleDeck()
	Mill(n int)
	Summon(card Entity) error
	TakeControl(target Entity)
	Discard(card Entity)

	AddMaxMana(n int)
	AddTempMana(n int)
	RefillMana(n int)
}

func asCharacter(e Entity) (Character, error) {
	c, ok := e.(Character)
	if !ok {
		return nil, ErrNotCharacter
	}
	return c, nil
}

func asPlayer(e Entity) (Player, error) {
	p, ok := e.(Player)
	if !ok {
		return nil, ErrNotPlayer
	}
	return p, nil
}

func asCard(e Entity) (Card, error) {
	c, ok := e.(Card)
	if !ok {
		return nil, ErrNotCard
	}
	return c, nil
}
