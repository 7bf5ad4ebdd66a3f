package game

import (
	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/game/selector"
)

// AttackAction makes an attacker attack a defender. Combat math itself is
// resolved by the game collaborator; this effect owns the flag marking,
// the ON notification, and the death pass.
type AttackAction struct {
	base
	attacker Entity
	defender Entity
}

// Attack builds an attack effect. In a trigger pattern the arguments are
// selectors matched against the event's attacker and defender.
func Attack(attacker, defender any) *AttackAction {
	a := &AttackAction{}
	a.base = newBase(TypeAttack, attacker, defender)
	a.attacker, _ = attacker.(Entity)
	a.defender, _ = defender.(Entity)
	return a
}

func (a *AttackAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	// Arg resolution marks the combatants before the effect runs.
	if m, ok := a.attacker.(Mutable); ok {
		m.SetTag(selector.TagAttacking, 1)
	}
	if m, ok := a.defender.(Mutable); ok {
		m.SetTag(selector.TagDefending, 1)
	}
	payload := []any{a.attacker, a.defender}
	err := a.runGame(source, g, payload, func() error {
		g.Logger().Info("attack",
			zap.String("attacker", a.attacker.Name()),
			zap.String("defender", a.defender.Name()),
		)
		a.broadcast(g, PhaseOn, a.attacker, a.defender)
		return g.ResolveAttack(a.attacker, a.defender)
	})
	return nil, err
}

// BeginTurnAction starts a player's turn.
type BeginTurnAction struct {
	base
	player any
}

func BeginTurn(player any) *BeginTurnAction {
	a := &BeginTurnAction{player: player}
	a.base = newBase(TypeBeginTurn, player)
	return a
}

func (a *BeginTurnAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	player, _ := a.player.(Entity)
	err := a.runGame(source, g, []any{player}, func() error {
		a.broadcast(g, PhaseOn, player)
		return g.StartTurn(player)
	})
	return nil, err
}

// EndTurnAction ends the current turn.
type EndTurnAction struct {
	base
	player any
}

func EndTurn(player any) *EndTurnAction {
	a := &EndTurnAction{player: player}
	a.base = newBase(TypeEndTurn, player)
	return a
}

func (a *EndTurnAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	player, _ := a.player.(Entity)
	err := a.runGame(source, g, []any{player}, func() error {
		a.broadcast(g, PhaseOn, player)
		return g.FinishTurn(player)
	})
	return nil, err
}

// DeathsAction forces a death-processing pass over the play zone.
type DeathsAction struct {
	base
}

func Deaths() *DeathsAction {
	a := &DeathsAction{}
	a.base = newBase(TypeDeaths)
	return a
}

func (a *DeathsAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	err := a.runGame(source, g, nil, func() error { return nil })
	return nil, err
}

// DeathAction resolves one character's death: it notifies death-reactive
// registrations and queues every consequence — gathered triggers plus the
// dead character's deathrattles — in ascending sequence-stamp order.
type DeathAction struct {
	base
	target any
}

func Death(target any) *DeathAction {
	a := &DeathAction{target: target}
	a.base = newBase(TypeDeath, target)
	return a
}

func (a *DeathAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	target, _ := a.target.(Entity)
	err := a.runGame(source, g, []any{target}, func() error {
		g.Logger().Info("death", zap.String("target", target.Name()))

		consequences := a.gather(g, PhaseOn, target)
		if c, ok := target.(Character); ok && len(c.Deathrattles()) > 0 {
			consequences = append(consequences, gatherDeathrattles(c)...)
		}
		sortBySequence(consequences)
		for _, q := range consequences {
			g.QueueActions(q.Owner, []Action{q.Action})
		}
		return nil
	})
	return nil, err
}

// PlayAction makes a player play a card, on an optional target, with an
// optional alternate-mode choice.
type PlayAction struct {
	base
	card   any
	target any
	choose string
}

func Play(card, target any, choose string) *PlayAction {
	a := &PlayAction{card: card, target: target, choose: choose}
	a.base = newBase(TypePlay, card, target, choose)
	return a
}

func (a *PlayAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	cardEnt, _ := a.card.(Entity)
	card, err := asCard(cardEnt)
	if err != nil {
		return nil, err
	}
	target, _ := a.target.(Entity)

	if card.RequiresTarget() && target == nil {
		return nil, ErrNoTarget
	}
	card.SetAbilityTarget(target)

	// Transient target and choice state is cleared whether or not the play
	// resolves.
	defer func() {
		card.SetAbilityTarget(nil)
		card.SetChosen(nil)
	}()

	if a.choose != "" {
		if !containsString(card.ChooseOptions(), a.choose) {
			return nil, ErrInvalidChoice
		}
		chosenEnt, err := g.Card(a.choose)
		if err != nil {
			return nil, err
		}
		chosen, err := asCard(chosenEnt)
		if err != nil {
			return nil, err
		}
		chosen.SetController(source)
		g.Logger().Info("choose one",
			zap.String("card", card.Name()),
			zap.String("chosen", chosen.Name()),
		)
		if chosen.RequiresTarget() {
			chosen.SetAbilityTarget(target)
		}
		card.SetChosen(chosen)
	}

	payload := []any{source, cardEnt, target, a.choose}
	err = a.runGame(source, g, payload, func() error {
		a.broadcast(g, PhaseOn, payload...)
		g.ProcessDeaths()
		if err := g.ResolvePlay(cardEnt); err != nil {
			return err
		}
		g.ProcessDeaths()
		a.broadcast(g, PhaseAfter, payload...)
		return nil
	})
	return nil, err
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
