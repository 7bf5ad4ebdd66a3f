package state

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/content"
	"github.com/emberforge/ember-server-go/internal/game"
	"github.com/emberforge/ember-server-go/internal/game/selector"
)

// Script binds behavior to a content identifier: the effects run when the
// card is played, the deathrattles it carries, and the trigger
// registrations attached to each fresh instance.
type Script struct {
	Play         func(self game.Entity) []game.Action
	Deathrattles []game.Followup
	Events       func(self game.Entity) []*game.Registration
}

// GameState is the reference Game implementation. All mutation happens on
// the driver goroutine; only the event bus is safe to touch from others.
type GameState struct {
	logger   *zap.Logger
	registry *content.Registry
	scripts  map[string]Script
	rng      *rand.Rand
	bus      *Bus

	players  []*Player
	entities []game.Entity
	pending  []game.QueuedAction

	turn    int
	current *Player
	depth   int
	winner  *Player
	over    bool
}

var _ game.Game = (*GameState)(nil)

// New builds an empty game over a content registry and a script table.
// The seed fixes the shared random source.
func New(logger *zap.Logger, registry *content.Registry, scripts map[string]Script, seed int64) *GameState {
	if scripts == nil {
		scripts = map[string]Script{}
	}
	return &GameState{
		logger:   logger,
		registry: registry,
		scripts:  scripts,
		rng:      rand.New(rand.NewSource(seed)),
		bus:      NewBus(),
	}
}

func (gs *GameState) Bus() *Bus           { return gs.bus }
func (gs *GameState) Logger() *zap.Logger { return gs.logger }
func (gs *GameState) Rand() *rand.Rand    { return gs.rng }
func (gs *GameState) Turn() int           { return gs.turn }

// CurrentPlayer returns the player whose turn it is, nil before the first
// turn starts.
func (gs *GameState) CurrentPlayer() *Player { return gs.current }

func (gs *GameState) Players() []*Player { return gs.players }

// AddPlayer seats a player with a hero and a deck. Deck cards enter the
// deck in the given order; the last identifier is the top of the deck.
func (gs *GameState) AddPlayer(name, heroID string, deckIDs []string) (*Player, error) {
	p := newPlayer(gs, name)
	gs.players = append(gs.players, p)
	gs.entities = append(gs.entities, p)

	hero, err := gs.instantiate(heroID)
	if err != nil {
		return nil, fmt.Errorf("hero %q: %w", heroID, err)
	}
	hero.controller = p
	hero.owner = p
	hero.zone = selector.ZonePlay
	p.hero = hero

	for _, id := range deckIDs {
		card, err := gs.instantiate(id)
		if err != nil {
			return nil, fmt.Errorf("deck card %q: %w", id, err)
		}
		card.controller = p
		card.owner = p
		card.zone = selector.ZoneDeck
		p.deck = append(p.deck, card)
	}
	return p, nil
}

// Entities enumerates every entity in every zone, hands and hidden zones
// included.
func (gs *GameState) Entities() []game.Entity {
	out := make([]game.Entity, len(gs.entities))
	copy(out, gs.entities)
	return out
}

// Card instantiates a fresh entity from a content identifier.
func (gs *GameState) Card(id string) (game.Entity, error) {
	c, err := gs.instantiate(id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (gs *GameState) instantiate(id string) (*Card, error) {
	def, ok := gs.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown card %q", id)
	}
	c := newCard(gs, def)
	if script, ok := gs.scripts[id]; ok {
		c.deathrattles = append(c.deathrattles, script.Deathrattles...)
		if len(script.Deathrattles) > 0 {
			c.SetTag(selector.TagDeathrattle, 1)
		}
		if script.Events != nil {
			c.Attach(script.Events(c)...)
		}
	}
	gs.entities = append(gs.entities, c)
	return c, nil
}

func (gs *GameState) FilterCards(f content.Filter) []string {
	return gs.registry.Filter(f)
}

// QueueActions appends follow-up effects to the pending list. Nothing runs
// until the driver drains it.
func (gs *GameState) QueueActions(source game.Entity, actions []game.Action) {
	for _, a := range actions {
		gs.pending = append(gs.pending, game.QueuedAction{Owner: source, Action: a})
	}
}

// PendingCount reports the length of the pending-effects list.
func (gs *GameState) PendingCount() int { return len(gs.pending) }

// RunPending drains the pending-effects list in order, stopping on the
// first error. Effects may queue more effects while draining.
func (gs *GameState) RunPending() error {
	for len(gs.pending) > 0 {
		q := gs.pending[0]
		gs.pending = gs.pending[1:]
		if _, err := q.Action.Trigger(q.Owner, gs); err != nil {
			return err
		}
	}
	return nil
}

// Perform resolves one externally driven action and then drains whatever
// it queued.
func (gs *GameState) Perform(source game.Entity, action game.Action) error {
	if _, err := action.Trigger(source, gs); err != nil {
		return err
	}
	return gs.RunPending()
}

func (gs *GameState) ActionStarted(t game.Type, source game.Entity, payload []any) {
	gs.depth++
	ev := Event{Kind: EventActionStarted, Turn: gs.turn, Action: string(t)}
	if source != nil {
		ev.Entity = source.Name()
	}
	gs.bus.Publish(ev)
}

func (gs *GameState) ActionEnded(t game.Type, source game.Entity, payload []any) {
	gs.depth--
	ev := Event{Kind: EventActionEnded, Turn: gs.turn, Action: string(t)}
	if source != nil {
		ev.Entity = source.Name()
	}
	gs.bus.Publish(ev)
}

func (gs *GameState) publish(ev Event) {
	ev.Turn = gs.turn
	gs.bus.Publish(ev)
}

// ProcessDeaths sweeps the play zone for dead characters, moves them to
// the graveyard, and resolves a death effect for each. The sweep repeats
// until a pass finds nothing, so deaths caused by death triggers resolve
// in the same call.
func (gs *GameState) ProcessDeaths() {
	for {
		var dead []*Card
		for _, p := range gs.players {
			if p.hero != nil && p.hero.zone == selector.ZonePlay && p.hero.Dead() {
				dead = append(dead, p.hero)
			}
			for _, m := range p.board {
				if m.Dead() {
					dead = append(dead, m)
				}
			}
		}
		if len(dead) == 0 {
			return
		}
		for _, c := range dead {
			c.SetZone(selector.ZoneGraveyard)
			gs.publish(Event{Kind: EventDeath, Entity: c.Name()})
			if c.def.Type == selector.TypeHero {
				gs.endGame(c)
			}
		}
		for _, c := range dead {
			if _, err := game.Death(c).Trigger(c, gs); err != nil {
				gs.logger.Error("death resolution failed",
					zap.String("entity", c.Name()), zap.Error(err))
			}
		}
	}
}

// Over reports whether a hero has died. Winner is nil on a draw.
func (gs *GameState) Over() bool      { return gs.over }
func (gs *GameState) Winner() *Player { return gs.winner }

func (gs *GameState) endGame(deadHero *Card) {
	if gs.over {
		return
	}
	gs.over = true
	gs.winner = nil
	for _, p := range gs.players {
		if p.hero != deadHero && p.hero != nil && !p.hero.Dead() {
			gs.winner = p
		}
	}
	name := ""
	if gs.winner != nil {
		name = gs.winner.Name()
	}
	gs.publish(Event{Kind: EventGameOver, Player: name})
	gs.logger.Info("game over", zap.String("winner", name), zap.Int("turn", gs.turn))
}

// ResolveAttack applies combat math: the defender takes the attacker's
// attack, the attacker takes the defender's attack back. Flag clearing is
// unconditional.
func (gs *GameState) ResolveAttack(attacker, defender game.Entity) error {
	defer func() {
		if m, ok := attacker.(game.Mutable); ok {
			m.SetTag(selector.TagAttacking, 0)
		}
		if m, ok := defender.(game.Mutable); ok {
			m.SetTag(selector.TagDefending, 0)
		}
	}()

	ac, ok := attacker.(*Card)
	if !ok {
		return game.ErrNotCharacter
	}
	dc, ok := defender.(*Card)
	if !ok {
		return game.ErrNotCharacter
	}

	dc.Hit(ac, ac.Attack())
	if dc.Attack() > 0 {
		ac.Hit(dc, dc.Attack())
	}
	return nil
}

// ResolvePlay moves a played card through its type-specific path: minions
// are summoned, spells and hero powers run their script and leave play,
// secrets go to the secret zone, weapons enter play. Play scripts run
// inline; their errors abort the play.
func (gs *GameState) ResolvePlay(card game.Entity) error {
	c, ok := card.(*Card)
	if !ok {
		return game.ErrNotCard
	}
	player, ok := c.controller.(*Player)
	if !ok {
		return game.ErrNotPlayer
	}

	player.spendMana(c.def.Cost)
	gs.publish(Event{Kind: EventPlay, Player: player.Name(), Entity: c.Name()})

	// Choose-one plays resolve the chosen mode in place of the base card.
	play := c
	if chosen, ok := c.chosen.(*Card); ok && chosen != nil {
		c.SetZone(selector.ZoneGraveyard)
		play = chosen
	}

	switch play.def.Type {
	case selector.TypeMinion:
		if err := player.Summon(play); err != nil {
			return err
		}
		gs.publish(Event{Kind: EventSummon, Player: player.Name(), Entity: play.Name()})
		if err := gs.runScript(play); err != nil {
			return err
		}
	case selector.TypeSpell, selector.TypeHeroPower:
		if err := gs.runScript(play); err != nil {
			return err
		}
		play.SetZone(selector.ZoneGraveyard)
	case selector.TypeSecret:
		play.SetZone(selector.ZoneSecret)
	case selector.TypeWeapon:
		play.SetZone(selector.ZonePlay)
		if err := gs.runScript(play); err != nil {
			return err
		}
	default:
		return fmt.Errorf("card %q: unplayable type %s", play.cardID, play.def.Type)
	}
	return nil
}

func (gs *GameState) runScript(c *Card) error {
	script, ok := gs.scripts[c.cardID]
	if !ok || script.Play == nil {
		return nil
	}
	for _, action := range script.Play(c) {
		if _, err := action.Trigger(c, gs); err != nil {
			return err
		}
	}
	return nil
}

// StartTurn advances to the player's turn: a fresh mana crystal, a full
// refill, unfreeze, and the turn draw queued through the effect system so
// fatigue and draw triggers apply.
func (gs *GameState) StartTurn(player game.Entity) error {
	p, ok := player.(*Player)
	if !ok {
		return game.ErrNotPlayer
	}
	gs.turn++
	gs.current = p
	p.AddMaxMana(1)
	p.usedMana = 0
	p.tempMana = 0
	for _, m := range p.board {
		m.SetTag(selector.TagFrozen, 0)
	}
	if p.hero != nil {
		p.hero.SetTag(selector.TagFrozen, 0)
	}
	gs.publish(Event{Kind: EventTurnStart, Player: p.Name()})
	gs.QueueActions(p, []game.Action{game.Draw(p)})
	return nil
}

// FinishTurn ends the player's turn and forfeits temporary mana.
func (gs *GameState) FinishTurn(player game.Entity) error {
	p, ok := player.(*Player)
	if !ok {
		return game.ErrNotPlayer
	}
	p.tempMana = 0
	gs.publish(Event{Kind: EventTurnEnd, Player: p.Name()})
	return nil
}

func (p *Player) spendMana(n int) {
	if n <= 0 {
		return
	}
	fromTemp := n
	if fromTemp > p.tempMana {
		fromTemp = p.tempMana
	}
	p.tempMana -= fromTemp
	p.usedMana += n - fromTemp
}

// transition keeps the per-player containers consistent with an entity's
// zone field, which has already been updated by SetZone.
func (gs *GameState) transition(c *Card, old, next selector.Zone) {
	gs.detach(c, old)
	gs.attach(c, next)
}

func (gs *GameState) detach(c *Card, from selector.Zone) {
	p, ok := c.controller.(*Player)
	if !ok {
		return
	}
	switch from {
	case selector.ZonePlay:
		for i, m := range p.board {
			if m == c {
				p.board = append(p.board[:i], p.board[i+1:]...)
				return
			}
		}
	case selector.ZoneHand:
		for i, h := range p.hand {
			if h == game.Entity(c) {
				p.hand = append(p.hand[:i], p.hand[i+1:]...)
				return
			}
		}
	case selector.ZoneDeck:
		for i, d := range p.deck {
			if d == game.Entity(c) {
				p.deck = append(p.deck[:i], p.deck[i+1:]...)
				return
			}
		}
	}
}

func (gs *GameState) attach(c *Card, to selector.Zone) {
	p, ok := c.controller.(*Player)
	if !ok {
		return
	}
	switch to {
	case selector.ZonePlay:
		if c.def.Type == selector.TypeMinion {
			p.board = append(p.board, c)
		}
	case selector.ZoneHand:
		p.hand = append(p.hand, c)
	case selector.ZoneDeck:
		p.deck = append(p.deck, c)
	}
}

// moveToBoard reassigns an in-play minion to another player's board.
func (gs *GameState) moveToBoard(e game.Entity, p *Player) {
	c, ok := e.(*Card)
	if !ok || len(p.board) >= maxBoardSize {
		return
	}
	gs.detach(c, c.zone)
	c.controller = p
	c.zone = selector.ZonePlay
	p.board = append(p.board, c)
}

// replaceOnBoard swaps a minion for another entity in the same board slot.
func (gs *GameState) replaceOnBoard(c *Card, into game.Entity) {
	m, ok := into.(*Card)
	if !ok {
		return
	}
	p, ok := c.controller.(*Player)
	if !ok {
		return
	}
	for i, b := range p.board {
		if b == c {
			m.controller = p
			m.zone = selector.ZonePlay
			p.board[i] = m
			c.zone = selector.ZoneSetAside
			return
		}
	}
}

func (gs *GameState) adjacent(c *Card) []game.Entity {
	p, ok := c.controller.(*Player)
	if !ok {
		return nil
	}
	var out []game.Entity
	for i, b := range p.board {
		if b != c {
			continue
		}
		if i > 0 {
			out = append(out, p.board[i-1])
		}
		if i < len(p.board)-1 {
			out = append(out, p.board[i+1])
		}
		break
	}
	return out
}

func playerDef(name string) content.Def {
	return content.Def{ID: "PLAYER", Name: name, Type: selector.TypePlayer}
}
