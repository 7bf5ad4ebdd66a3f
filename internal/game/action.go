package game

import (
	"github.com/emberforge/ember-server-go/internal/game/selector"
)

// Type is the closed variant tag of the effect vocabulary. Trigger
// matching compares variant tags before evaluating pattern fields.
type Type string

const (
	TypeAttack    Type = "ATTACK"
	TypeBeginTurn Type = "BEGIN_TURN"
	TypeEndTurn   Type = "END_TURN"
	TypeDeath     Type = "DEATH"
	TypeDeaths    Type = "DEATHS"
	TypePlay      Type = "PLAY"

	TypeBuff         Type = "BUFF"
	TypeBounce       Type = "BOUNCE"
	TypeDamage       Type = "DAMAGE"
	TypeDeathrattle  Type = "DEATHRATTLE"
	TypeDestroy      Type = "DESTROY"
	TypeDiscard      Type = "DISCARD"
	TypeDraw         Type = "DRAW"
	TypeForceDraw    Type = "FORCE_DRAW"
	TypeForcePlay    Type = "FORCE_PLAY"
	TypeFullHeal     Type = "FULL_HEAL"
	TypeGainArmor    Type = "GAIN_ARMOR"
	TypeGainMana     Type = "GAIN_MANA"
	TypeGive         Type = "GIVE"
	TypeHeal         Type = "HEAL"
	TypeHit          Type = "HIT"
	TypeManaThisTurn Type = "MANA_THIS_TURN"
	TypeMill         Type = "MILL"
	TypeMorph        Type = "MORPH"
	TypeFreeze       Type = "FREEZE"
	TypeFillMana     Type = "FILL_MANA"
	TypeReveal       Type = "REVEAL"
	TypeSetTag       Type = "SET_TAG"
	TypeSilence      Type = "SILENCE"
	TypeSummon       Type = "SUMMON"
	TypeShuffle      Type = "SHUFFLE"
	TypeSwap         Type = "SWAP"
	TypeTakeControl  Type = "TAKE_CONTROL"

	TypeEvaluator Type = "EVALUATOR"
)

// Action is a named effect with a sequence stamp, a repeat count, and its
// declared argument values. Actions are created when a card, ability, or
// trigger fires, resolved once, then discarded. The variant set is closed:
// only this package implements the interface.
type Action interface {
	ActionType() Type
	Sequence() uint64

	// Trigger resolves the action against current game state. For targeted
	// actions the returned outer slice holds one result list per resolved
	// target per repeat.
	Trigger(source Entity, g Game) ([][]Entity, error)

	matchArgs() []any
	mulTimes(int)
}

// Times multiplies an action's repeat count. Each repeat re-resolves the
// target selector before applying the effect.
func Times[A Action](a A, n int) A {
	a.mulTimes(n)
	return a
}

// base carries the data every effect variant shares. The sequence stamp is
// assigned here, at construction, and never changes.
type base struct {
	typ   Type
	seq   uint64
	times int
	args  []any
}

func newBase(typ Type, args ...any) base {
	return base{typ: typ, seq: nextSequence(), times: 1, args: args}
}

func (b *base) ActionType() Type { return b.typ }
func (b *base) Sequence() uint64 { return b.seq }
func (b *base) matchArgs() []any { return b.args }
func (b *base) mulTimes(n int)   { b.times *= n }

// On registers follow-up effects fired concurrently with events matching
// the trigger pattern. The pattern action is a structural matcher only; it
// is never executed.
func On(trigger Action, followups ...Followup) *Registration {
	return newRegistration(trigger, followups, PhaseOn, selector.ZonePlay, false)
}

// After registers follow-up effects fired after events matching the
// trigger pattern.
func After(trigger Action, followups ...Followup) *Registration {
	return newRegistration(trigger, followups, PhaseAfter, selector.ZonePlay, false)
}

// Once registers follow-up effects fired at most once, concurrently with
// the first matching event.
func Once(trigger Action, followups ...Followup) *Registration {
	return newRegistration(trigger, followups, PhaseOn, selector.ZonePlay, true)
}

// evaler matches both Selector and RandomSelector.
type evaler interface {
	Eval([]selector.Entity, selector.Context) []selector.Entity
}

// resolveEntities resolves a target-position argument at execution time. A
// live entity is used as-is; a selector is evaluated against current state;
// an action is triggered and its first result list reused.
func resolveEntities(v any, source Entity, g Game) ([]Entity, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case Entity:
		return []Entity{t}, nil
	case Action:
		res, err := t.Trigger(source, g)
		if err != nil {
			return nil, err
		}
		if len(res) == 0 {
			return nil, nil
		}
		return res[0], nil
	case evaler:
		return t.Eval(g.Entities(), selector.Context{Source: source, Rand: g.Rand()}), nil
	default:
		return nil, nil
	}
}

// targetedBase is the shared execution engine for targeted effects. The
// target argument is resolved fresh on every repeat, immediately before
// that repeat's effect runs: consequences of earlier repeats can change
// which entities are legal targets.
type targetedBase struct {
	base
	targets any
}

func newTargeted(typ Type, targets any, extra ...any) targetedBase {
	args := append([]any{targets}, extra...)
	return targetedBase{base: newBase(typ, args...), targets: targets}
}

func (t *targetedBase) run(source Entity, g Game, apply func(target Entity) ([]Entity, error)) ([][]Entity, error) {
	var results [][]Entity
	for i := 0; i < t.times; i++ {
		targets, err := resolveEntities(t.targets, source, g)
		if err != nil {
			return nil, err
		}
		g.ActionStarted(t.typ, source, t.args)
		for _, target := range targets {
			res, err := apply(target)
			if err != nil {
				return nil, err
			}
			results = append(results, res)
		}
		g.ActionEnded(t.typ, source, t.args)
	}
	return results, nil
}

// runGame brackets an untargeted effect with observer notifications and a
// forced death-processing pass.
func (b *base) runGame(source Entity, g Game, payload []any, do func() error) error {
	g.ActionStarted(b.typ, source, payload)
	if err := do(); err != nil {
		return err
	}
	g.ActionEnded(b.typ, source, payload)
	g.ProcessDeaths()
	return nil
}
