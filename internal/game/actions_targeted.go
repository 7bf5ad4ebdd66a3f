package game

import (
	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/game/selector"
)

// BuffAction attaches the enchantment with the given content identifier to
// character targets.
type BuffAction struct {
	targetedBase
	id string
}

func Buff(targets any, id string) *BuffAction {
	a := &BuffAction{id: id}
	a.targetedBase = newTargeted(TypeBuff, targets, id)
	return a
}

func (a *BuffAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		buff, err := g.Card(a.id)
		if err != nil {
			return nil, err
		}
		c.ApplyBuff(buff)
		return []Entity{buff}, nil
	})
}

// BounceAction returns minion targets from the field to their owner's hand.
type BounceAction struct {
	targetedBase
}

func Bounce(targets any) *BounceAction {
	a := &BounceAction{}
	a.targetedBase = newTargeted(TypeBounce, targets)
	return a
}

func (a *BounceAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		c.Bounce()
		return nil, nil
	})
}

// DamageAction damages character targets through their own damage-intake
// rule. The ON notification carries the amount actually applied and only
// fires when it is nonzero.
type DamageAction struct {
	targetedBase
	amount int
}

func Damage(targets any, amount int) *DamageAction {
	a := &DamageAction{amount: amount}
	a.targetedBase = newTargeted(TypeDamage, targets, amount)
	return a
}

func (a *DamageAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		applied := c.Hit(source, a.amount)
		if applied != 0 {
			a.broadcast(g, PhaseOn, target, applied, source)
		}
		return nil, nil
	})
}

// DeathrattleAction resolves the deathrattles bound to card targets. A
// controller with the extra-deathrattles modifier resolves each one twice.
type DeathrattleAction struct {
	targetedBase
}

func Deathrattle(targets any) *DeathrattleAction {
	a := &DeathrattleAction{}
	a.targetedBase = newTargeted(TypeDeathrattle, targets)
	return a
}

func (a *DeathrattleAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		repeats := deathrattleRepeats(c)
		for _, dr := range c.Deathrattles() {
			for i := 0; i < repeats; i++ {
				g.QueueActions(target, followupActions(target, dr, nil))
			}
		}
		return nil, nil
	})
}

func deathrattleRepeats(c Character) int {
	if ctrl := c.Controller(); ctrl != nil && ctrl.Tag(selector.TagExtraDeathrattles) != 0 {
		return 2
	}
	return 1
}

// gatherDeathrattles expands a dead character's deathrattles into owner and
// effect pairs without queuing them, for sequence-ordered death resolution.
func gatherDeathrattles(c Character) []QueuedAction {
	var out []QueuedAction
	repeats := deathrattleRepeats(c)
	for _, dr := range c.Deathrattles() {
		for i := 0; i < repeats; i++ {
			for _, action := range followupActions(c, dr, nil) {
				out = append(out, QueuedAction{Owner: c, Action: action})
			}
		}
	}
	return out
}

// DestroyAction destroys character targets.
type DestroyAction struct {
	targetedBase
}

func Destroy(targets any) *DestroyAction {
	a := &DestroyAction{}
	a.targetedBase = newTargeted(TypeDestroy, targets)
	return a
}

func (a *DestroyAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		c.Destroy()
		return nil, nil
	})
}

// DiscardAction discards card targets from their controller's hand.
type DiscardAction struct {
	targetedBase
}

func Discard(targets any) *DiscardAction {
	a := &DiscardAction{}
	a.targetedBase = newTargeted(TypeDiscard, targets)
	return a
}

func (a *DiscardAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target.Controller())
		if err != nil {
			return nil, err
		}
		p.Discard(target)
		return nil, nil
	})
}

// DrawAction makes player targets draw from the top of their deck. An
// empty deck produces a fatigue event instead of a draw.
type DrawAction struct {
	targetedBase
}

func Draw(targets any) *DrawAction {
	a := &DrawAction{}
	a.targetedBase = newTargeted(TypeDraw, targets)
	return a
}

func (a *DrawAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target)
		if err != nil {
			return nil, err
		}
		if len(p.Deck()) == 0 {
			p.Fatigue()
			return nil, nil
		}
		card := p.Draw()
		return []Entity{card}, nil
	})
}

// ForceDrawAction makes player targets draw specific cards from their deck.
type ForceDrawAction struct {
	targetedBase
	cards any
}

func ForceDraw(targets, cards any) *ForceDrawAction {
	a := &ForceDrawAction{cards: cards}
	a.targetedBase = newTargeted(TypeForceDraw, targets, cards)
	return a
}

func (a *ForceDrawAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target)
		if err != nil {
			return nil, err
		}
		cards, err := resolveEntities(a.cards, source, g)
		if err != nil {
			return nil, err
		}
		for _, card := range cards {
			p.DrawSpecific(card)
		}
		return cards, nil
	})
}

// ForcePlayAction makes player targets play cards from their hand at no
// cost.
type ForcePlayAction struct {
	targetedBase
	cards any
}

func ForcePlay(targets, cards any) *ForcePlayAction {
	a := &ForcePlayAction{cards: cards}
	a.targetedBase = newTargeted(TypeForcePlay, targets, cards)
	return a
}

func (a *ForcePlayAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target)
		if err != nil {
			return nil, err
		}
		cards, err := resolveEntities(a.cards, source, g)
		if err != nil {
			return nil, err
		}
		for _, card := range cards {
			if err := p.Summon(card); err != nil {
				return nil, err
			}
		}
		return cards, nil
	})
}

// FullHealAction fully heals character targets.
type FullHealAction struct {
	targetedBase
}

func FullHeal(targets any) *FullHealAction {
	a := &FullHealAction{}
	a.targetedBase = newTargeted(TypeFullHeal, targets)
	return a
}

func (a *FullHealAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		applyHeal(&a.base, g, source, c, c.Health())
		return nil, nil
	})
}

// GainArmorAction grants hero targets armor.
type GainArmorAction struct {
	targetedBase
	amount int
}

func GainArmor(targets any, amount int) *GainArmorAction {
	a := &GainArmorAction{amount: amount}
	a.targetedBase = newTargeted(TypeGainArmor, targets, amount)
	return a
}

func (a *GainArmorAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		m, ok := target.(Mutable)
		if !ok {
			return nil, ErrNotCharacter
		}
		m.SetTag(selector.TagArmor, target.Tag(selector.TagArmor)+a.amount)
		a.broadcast(g, PhaseOn, target, a.amount)
		return nil, nil
	})
}

// GainManaAction gives player targets permanent mana crystals.
type GainManaAction struct {
	targetedBase
	amount int
}

func GainMana(targets any, amount int) *GainManaAction {
	a := &GainManaAction{amount: amount}
	a.targetedBase = newTargeted(TypeGainMana, targets, amount)
	return a
}

func (a *GainManaAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target)
		if err != nil {
			return nil, err
		}
		p.AddMaxMana(a.amount)
		return nil, nil
	})
}

// GiveAction puts cards into player targets' hands. The card argument is
// deferred: it resolves to concrete content when the effect executes.
type GiveAction struct {
	targetedBase
	card any
}

func Give(targets, card any) *GiveAction {
	a := &GiveAction{card: card}
	a.targetedBase = newTargeted(TypeGive, targets, card)
	return a
}

func (a *GiveAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		cards, err := resolveCards(a.card, source, g)
		if err != nil {
			return nil, err
		}
		g.Logger().Debug("give",
			zap.String("player", target.Name()),
			zap.Int("cards", len(cards)),
		)
		for _, card := range cards {
			m, ok := card.(Mutable)
			if !ok {
				return nil, ErrNotCard
			}
			m.SetController(target)
			m.SetZone(selector.ZoneHand)
		}
		return cards, nil
	})
}

// HealAction heals character targets. Undamaged targets receive nothing;
// the amount is doubled by the controller's healing-double modifier and
// clamped to outstanding damage; the ON notification fires only for a
// nonzero applied amount. A controller with the healing-as-damage modifier
// hits instead.
type HealAction struct {
	targetedBase
	amount int
}

func Heal(targets any, amount int) *HealAction {
	a := &HealAction{amount: amount}
	a.targetedBase = newTargeted(TypeHeal, targets, amount)
	return a
}

func (a *HealAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		if ctrl := source.Controller(); ctrl != nil && ctrl.Tag(selector.TagHealingAsDamage) != 0 {
			c.Hit(source, a.amount)
			return nil, nil
		}
		applyHeal(&a.base, g, source, c, a.amount)
		return nil, nil
	})
}

func applyHeal(b *base, g Game, source Entity, target Character, amount int) {
	if ctrl := source.Controller(); ctrl != nil {
		amount *= ctrl.Tag(selector.TagHealingDouble) + 1
	}
	if amount > target.DamageTaken() {
		amount = target.DamageTaken()
	}
	if amount == 0 {
		return
	}
	g.Logger().Info("heal",
		zap.String("source", source.Name()),
		zap.String("target", target.Name()),
		zap.Int("amount", amount),
	)
	target.SetDamageTaken(target.DamageTaken() - amount)
	b.broadcast(g, PhaseOn, Entity(target), amount)
}

// HitAction hits character targets without a damage notification. From
// overrides the nominal actor, for damage dealt on another entity's behalf.
type HitAction struct {
	targetedBase
	amount    int
	altSource Entity
}

func Hit(targets any, amount int) *HitAction {
	a := &HitAction{amount: amount}
	a.targetedBase = newTargeted(TypeHit, targets, amount)
	return a
}

// From sets the entity the damage is attributed to.
func (a *HitAction) From(src Entity) *HitAction {
	a.altSource = src
	return a
}

func (a *HitAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		src := source
		if a.altSource != nil {
			src = a.altSource
		}
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		c.Hit(src, a.amount)
		return nil, nil
	})
}

// ManaThisTurnAction gives player targets temporary mana for the turn.
type ManaThisTurnAction struct {
	targetedBase
	amount int
}

func ManaThisTurn(targets any, amount int) *ManaThisTurnAction {
	a := &ManaThisTurnAction{amount: amount}
	a.targetedBase = newTargeted(TypeManaThisTurn, targets, amount)
	return a
}

func (a *ManaThisTurnAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target)
		if err != nil {
			return nil, err
		}
		p.AddTempMana(a.amount)
		return nil, nil
	})
}

// MillAction mills cards from the top of player targets' decks.
type MillAction struct {
	targetedBase
	count int
}

func Mill(targets any, count int) *MillAction {
	a := &MillAction{count: count}
	a.targetedBase = newTargeted(TypeMill, targets, count)
	return a
}

func (a *MillAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target)
		if err != nil {
			return nil, err
		}
		p.Mill(a.count)
		return nil, nil
	})
}

// MorphAction transforms minion targets into the given card.
type MorphAction struct {
	targetedBase
	id string
}

func Morph(targets any, id string) *MorphAction {
	a := &MorphAction{id: id}
	a.targetedBase = newTargeted(TypeMorph, targets, id)
	return a
}

func (a *MorphAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		into, err := g.Card(a.id)
		if err != nil {
			return nil, err
		}
		c.Morph(into)
		return []Entity{into}, nil
	})
}

// FreezeAction freezes character targets.
type FreezeAction struct {
	targetedBase
}

func Freeze(targets any) *FreezeAction {
	a := &FreezeAction{}
	a.targetedBase = newTargeted(TypeFreeze, targets)
	return a
}

func (a *FreezeAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		m, ok := target.(Mutable)
		if !ok {
			return nil, ErrNotCharacter
		}
		m.SetTag(selector.TagFrozen, 1)
		return nil, nil
	})
}

// FillManaAction refills used mana crystals for player targets.
type FillManaAction struct {
	targetedBase
	amount int
}

func FillMana(targets any, amount int) *FillManaAction {
	a := &FillManaAction{amount: amount}
	a.targetedBase = newTargeted(TypeFillMana, targets, amount)
	return a
}

func (a *FillManaAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target)
		if err != nil {
			return nil, err
		}
		p.RefillMana(a.amount)
		return nil, nil
	})
}

// RevealAction reveals secret targets, then destroys them.
type RevealAction struct {
	targetedBase
}

func Reveal(targets any) *RevealAction {
	a := &RevealAction{}
	a.targetedBase = newTargeted(TypeReveal, targets)
	return a
}

func (a *RevealAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		g.Logger().Info("revealing secret", zap.String("secret", target.Name()))
		a.broadcast(g, PhaseOn, target)
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		c.Destroy()
		return nil, nil
	})
}

// SetTagAction sets tag values on targets.
type SetTagAction struct {
	targetedBase
	values map[selector.Tag]int
}

func SetTags(targets any, values map[selector.Tag]int) *SetTagAction {
	a := &SetTagAction{values: values}
	a.targetedBase = newTargeted(TypeSetTag, targets)
	return a
}

func (a *SetTagAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		m, ok := target.(Mutable)
		if !ok {
			return nil, ErrNotCharacter
		}
		for k, v := range a.values {
			if target.Tag(k) != v {
				m.SetTag(k, v)
			}
		}
		return nil, nil
	})
}

// SilenceAction silences minion targets.
type SilenceAction struct {
	targetedBase
}

func Silence(targets any) *SilenceAction {
	a := &SilenceAction{}
	a.targetedBase = newTargeted(TypeSilence, targets)
	return a
}

func (a *SilenceAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		c, err := asCharacter(target)
		if err != nil {
			return nil, err
		}
		c.Silence()
		return nil, nil
	})
}

// SummonAction makes player targets summon cards onto their field. The
// card argument is deferred to execution time.
type SummonAction struct {
	targetedBase
	card any
}

func Summon(targets, card any) *SummonAction {
	a := &SummonAction{card: card}
	a.targetedBase = newTargeted(TypeSummon, targets, card)
	return a
}

func (a *SummonAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target)
		if err != nil {
			return nil, err
		}
		cards, err := resolveCards(a.card, source, g)
		if err != nil {
			return nil, err
		}
		for _, card := range cards {
			g.Logger().Info("summon",
				zap.String("player", target.Name()),
				zap.String("card", card.Name()),
			)
			if card.Controller() != target {
				if m, ok := card.(Mutable); ok {
					m.SetController(target)
				}
			}
			a.broadcast(g, PhaseOn, target, card)
			if err := p.Summon(card); err != nil {
				return nil, err
			}
			a.broadcast(g, PhaseAfter, target, card)
		}
		return cards, nil
	})
}

// ShuffleAction shuffles cards into player targets' decks.
type ShuffleAction struct {
	targetedBase
	card any
}

func Shuffle(targets, card any) *ShuffleAction {
	a := &ShuffleAction{card: card}
	a.targetedBase = newTargeted(TypeShuffle, targets, card)
	return a
}

func (a *ShuffleAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(target)
		if err != nil {
			return nil, err
		}
		cards, err := resolveCards(a.card, source, g)
		if err != nil {
			return nil, err
		}
		for _, card := range cards {
			m, ok := card.(Mutable)
			if !ok {
				return nil, ErrNotCard
			}
			m.SetController(target)
			m.SetZone(selector.ZoneDeck)
			p.ShuffleDeck()
		}
		return cards, nil
	})
}

// SwapAction swaps each target's zone with one other entity. Matching more
// than one other entity is a precondition violation.
type SwapAction struct {
	targetedBase
	other any
}

func Swap(targets, other any) *SwapAction {
	a := &SwapAction{other: other}
	a.targetedBase = newTargeted(TypeSwap, targets, other)
	return a
}

func (a *SwapAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		others, err := resolveEntities(a.other, source, g)
		if err != nil {
			return nil, err
		}
		if len(others) == 0 {
			return nil, nil
		}
		if len(others) > 1 {
			return nil, ErrSwapArity
		}
		tm, ok1 := target.(Mutable)
		om, ok2 := others[0].(Mutable)
		if !ok1 || !ok2 {
			return nil, ErrNotCharacter
		}
		orig := target.Zone()
		tm.SetZone(others[0].Zone())
		om.SetZone(orig)
		return nil, nil
	})
}

// TakeControlAction gives the source's controller control of the targets.
type TakeControlAction struct {
	targetedBase
}

func TakeControl(targets any) *TakeControlAction {
	a := &TakeControlAction{}
	a.targetedBase = newTargeted(TypeTakeControl, targets)
	return a
}

func (a *TakeControlAction) Trigger(source Entity, g Game) ([][]Entity, error) {
	return a.run(source, g, func(target Entity) ([]Entity, error) {
		p, err := asPlayer(source.Controller())
		if err != nil {
			return nil, err
		}
		p.TakeControl(target)
		return nil, nil
	})
}
