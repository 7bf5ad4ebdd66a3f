package state

import (
	"errors"

	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/game"
	"github.com/emberforge/ember-server-go/internal/game/selector"
)

const maxBoardSize = 7

// ErrBoardFull is returned when a summon would exceed the board limit.
var ErrBoardFull = errors.New("board is full")

// Player is the per-seat entity. It owns the deck, hand, board, hero, and
// mana pool; as an entity it lives in the play zone and controls itself.
type Player struct {
	Card

	hero  *Card
	deck  []game.Entity
	hand  []game.Entity
	board []*Card

	maxMana  int
	usedMana int
	tempMana int
	fatigue  int
}

var _ game.Player = (*Player)(nil)

func newPlayer(gs *GameState, name string) *Player {
	p := &Player{}
	p.Card = Card{
		gs:   gs,
		id:   newEntityID(),
		def:  playerDef(name),
		zone: selector.ZonePlay,
		tags: make(map[selector.Tag]int),
	}
	p.controller = p
	return p
}

func (p *Player) Hero() game.Entity { return p.hero }

func (p *Player) Deck() []game.Entity { return p.deck }
func (p *Player) Hand() []game.Entity { return p.hand }

// Board returns the player's in-play minions in board order.
func (p *Player) Board() []game.Entity {
	out := make([]game.Entity, len(p.board))
	for i, m := range p.board {
		out[i] = m
	}
	return out
}

func (p *Player) MaxMana() int  { return p.maxMana }
func (p *Player) UsedMana() int { return p.usedMana }

// Mana is the amount currently available to spend.
func (p *Player) Mana() int {
	m := p.maxMana - p.usedMana + p.tempMana
	if m < 0 {
		return 0
	}
	return m
}

func (p *Player) AddMaxMana(n int) {
	p.maxMana += n
	if p.maxMana > 10 {
		p.maxMana = 10
	}
	if p.maxMana < 0 {
		p.maxMana = 0
	}
}

func (p *Player) AddTempMana(n int) { p.tempMana += n }

// RefillMana restores up to n spent crystals.
func (p *Player) RefillMana(n int) {
	p.usedMana -= n
	if p.usedMana < 0 {
		p.usedMana = 0
	}
}

// Draw moves the top deck card to the hand and returns it. A full hand
// burns the card to the graveyard instead.
func (p *Player) Draw() game.Entity {
	if len(p.deck) == 0 {
		return nil
	}
	card := p.deck[len(p.deck)-1]
	p.drawCard(card)
	return card
}

// DrawSpecific moves a known deck card to the hand.
func (p *Player) DrawSpecific(card game.Entity) {
	for _, c := range p.deck {
		if c == card {
			p.drawCard(card)
			return
		}
	}
}

func (p *Player) drawCard(card game.Entity) {
	m, ok := card.(game.Mutable)
	if !ok {
		return
	}
	if len(p.hand) >= maxHandSize {
		p.gs.logger.Info("hand full, card burned", zap.String("card", card.Name()))
		m.SetZone(selector.ZoneGraveyard)
		return
	}
	m.SetZone(selector.ZoneHand)
	p.gs.publish(Event{Kind: EventDraw, Player: p.Name(), Entity: card.Name()})
}

// Fatigue is the modeled event for drawing from an empty deck: cumulative
// damage dealt to the player's hero.
func (p *Player) Fatigue() {
	p.fatigue++
	p.gs.logger.Info("fatigue",
		zap.String("player", p.Name()),
		zap.Int("damage", p.fatigue),
	)
	p.gs.publish(Event{Kind: EventFatigue, Player: p.Name(), Amount: p.fatigue})
	if p.hero != nil {
		p.hero.Hit(p, p.fatigue)
	}
}

func (p *Player) ShuffleDeck() {
	rng := p.gs.rng
	rng.Shuffle(len(p.deck), func(i, j int) {
		p.deck[i], p.deck[j] = p.deck[j], p.deck[i]
	})
}

// Mill discards the top n deck cards to the graveyard.
func (p *Player) Mill(n int) {
	for i := 0; i < n && len(p.deck) > 0; i++ {
		card := p.deck[len(p.deck)-1]
		if m, ok := card.(game.Mutable); ok {
			m.SetZone(selector.ZoneGraveyard)
		}
	}
}

// Summon puts a minion into play on this player's board.
func (p *Player) Summon(card game.Entity) error {
	if len(p.board) >= maxBoardSize {
		return ErrBoardFull
	}
	m, ok := card.(game.Mutable)
	if !ok {
		return game.ErrNotCard
	}
	m.SetController(p)
	m.SetZone(selector.ZonePlay)
	return nil
}

// TakeControl moves an in-play minion to this player's board.
func (p *Player) TakeControl(target game.Entity) {
	p.gs.moveToBoard(target, p)
}

func (p *Player) Discard(card game.Entity) {
	if m, ok := card.(game.Mutable); ok {
		m.SetZone(selector.ZoneGraveyard)
	}
	p.gs.publish(Event{Kind: EventDiscard, Player: p.Name(), Entity: card.Name()})
}
