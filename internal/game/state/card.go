// Package state is the reference implementation of the game-state
// collaborator the action core resolves against: concrete entities,
// per-player board/hand/deck containers, the pending-effects queue, death
// processing, and turn transitions.
package state

import (
	"github.com/google/uuid"

	"github.com/emberforge/ember-server-go/internal/content"
	"github.com/emberforge/ember-server-go/internal/game"
	"github.com/emberforge/ember-server-go/internal/game/selector"
)

const maxHandSize = 10

// Card is the universal concrete entity: minions, heroes, spells, weapons,
// secrets, and enchantments are all Cards distinguished by their card type.
type Card struct {
	gs *GameState

	id     string
	cardID string
	def    content.Def

	zone       selector.Zone
	controller game.Entity
	owner      game.Entity
	target     game.Entity
	chosen     game.Entity

	tags          map[selector.Tag]int
	attack        int
	health        int
	buffAttack    int
	buffHealth    int
	toBeDestroyed bool
	ignoreEvents  bool

	registrations []*game.Registration
	deathrattles  []game.Followup
	buffs         []game.Entity
}

var (
	_ game.Card      = (*Card)(nil)
	_ game.Character = (*Card)(nil)
	_ game.Listener  = (*Card)(nil)
)

func newEntityID() string { return uuid.NewString() }

func newCard(gs *GameState, def content.Def) *Card {
	return &Card{
		gs:     gs,
		id:     newEntityID(),
		cardID: def.ID,
		def:    def,
		zone:   selector.ZoneSetAside,
		tags:   make(map[selector.Tag]int),
		attack: def.Attack,
		health: def.Health,
	}
}

func (c *Card) EntityID() string { return c.id }
func (c *Card) CardID() string   { return c.cardID }
func (c *Card) Name() string     { return c.def.Name }
func (c *Card) Cost() int        { return c.def.Cost }

func (c *Card) Zone() selector.Zone     { return c.zone }
func (c *Card) Type() selector.CardType { return c.def.Type }
func (c *Card) Race() selector.Race     { return c.def.Race }

func (c *Card) Controller() game.Entity    { return c.controller }
func (c *Card) Owner() game.Entity         { return c.owner }
func (c *Card) AbilityTarget() game.Entity { return c.target }

func (c *Card) Tag(t selector.Tag) int { return c.tags[t] }
func (c *Card) SetTag(t selector.Tag, v int) {
	if v == 0 {
		delete(c.tags, t)
		return
	}
	c.tags[t] = v
}

func (c *Card) SetZone(z selector.Zone) {
	if c.zone == z {
		return
	}
	old := c.zone
	c.zone = z
	c.gs.transition(c, old, z)
}

// SetController reassigns the entity, moving it between the players'
// zone containers when it currently sits in one.
func (c *Card) SetController(e game.Entity) {
	if c.controller == e {
		return
	}
	c.gs.detach(c, c.zone)
	c.controller = e
	c.gs.attach(c, c.zone)
}

func (c *Card) SetOwner(e game.Entity) { c.owner = e }

func (c *Card) SetAbilityTarget(e game.Entity) { c.target = e }
func (c *Card) SetChosen(card game.Entity)     { c.chosen = card }
func (c *Card) Chosen() game.Entity            { return c.chosen }

func (c *Card) RequiresTarget() bool    { return c.def.RequiresTarget }
func (c *Card) ChooseOptions() []string { return c.def.ChooseCards }

func (c *Card) IgnoreEvents() bool     { return c.ignoreEvents }
func (c *Card) SetIgnoreEvents(v bool) { c.ignoreEvents = v }

// Attack is the character's current attack value including buffs.
func (c *Card) Attack() int { return c.attack + c.buffAttack }

// Health is the character's maximum health including buffs.
func (c *Card) Health() int { return c.health + c.buffHealth }

// CurrentHealth is health minus damage taken.
func (c *Card) CurrentHealth() int { return c.Health() - c.DamageTaken() }

func (c *Card) DamageTaken() int { return c.tags[selector.TagDamage] }
func (c *Card) SetDamageTaken(n int) {
	c.SetTag(selector.TagDamage, n)
}

func (c *Card) isCharacter() bool {
	return c.def.Type == selector.TypeMinion || c.def.Type == selector.TypeHero ||
		c.def.Type == selector.TypeWeapon
}

func (c *Card) Dead() bool {
	if c.zone == selector.ZoneGraveyard {
		return true
	}
	if !c.isCharacter() {
		return false
	}
	return c.toBeDestroyed || c.CurrentHealth() <= 0
}

// Hit is the damage-intake rule: armor absorbs first, the rest becomes
// damage. Returns the amount actually applied.
func (c *Card) Hit(source game.Entity, amount int) int {
	if amount <= 0 {
		return 0
	}
	if armor := c.tags[selector.TagArmor]; armor > 0 {
		absorbed := armor
		if absorbed > amount {
			absorbed = amount
		}
		c.SetTag(selector.TagArmor, armor-absorbed)
		amount -= absorbed
	}
	if amount == 0 {
		return 0
	}
	c.SetDamageTaken(c.DamageTaken() + amount)
	c.gs.publish(Event{Kind: EventDamage, Entity: c.Name(), Amount: amount})
	return amount
}

func (c *Card) Destroy() { c.toBeDestroyed = true }

// Bounce returns the minion to its controller's hand, or destroys it when
// the hand is full.
func (c *Card) Bounce() {
	if p, ok := c.controller.(*Player); ok && len(p.hand) >= maxHandSize {
		c.Destroy()
		return
	}
	c.SetDamageTaken(0)
	c.SetZone(selector.ZoneHand)
}

// Silence strips deathrattles, trigger registrations, buffs, and volatile
// tags.
func (c *Card) Silence() {
	c.deathrattles = nil
	c.registrations = nil
	c.buffAttack = 0
	c.buffHealth = 0
	for _, t := range []selector.Tag{
		selector.TagDeathrattle, selector.TagFrozen, selector.TagTaunt,
		selector.TagStealth, selector.TagCantAttack,
	} {
		c.SetTag(t, 0)
	}
	c.SetTag(selector.TagSilenced, 1)
}

// Morph replaces the minion on the board with another entity.
func (c *Card) Morph(into game.Entity) {
	c.gs.replaceOnBoard(c, into)
}

// ApplyBuff attaches an enchantment; its stats apply as deltas.
func (c *Card) ApplyBuff(buff game.Entity) {
	if b, ok := buff.(*Card); ok {
		b.owner = c
		b.zone = selector.ZonePlay
		c.buffAttack += b.def.Attack
		c.buffHealth += b.def.Health
	}
	c.buffs = append(c.buffs, buff)
}

func (c *Card) Deathrattles() []game.Followup { return c.deathrattles }

// AddDeathrattle binds an effect that resolves when this entity dies.
func (c *Card) AddDeathrattle(dr game.Followup) {
	c.deathrattles = append(c.deathrattles, dr)
	c.SetTag(selector.TagDeathrattle, 1)
}

func (c *Card) Registrations() []*game.Registration { return c.registrations }

func (c *Card) Attach(regs ...*game.Registration) {
	c.registrations = append(c.registrations, regs...)
}

func (c *Card) RemoveRegistration(reg *game.Registration) {
	for i, r := range c.registrations {
		if r == reg {
			c.registrations = append(c.registrations[:i], c.registrations[i+1:]...)
			return
		}
	}
}

// Adjacent returns the board neighbors of an in-play minion.
func (c *Card) Adjacent() []game.Entity {
	return c.gs.adjacent(c)
}
