package game

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/emberforge/ember-server-go/internal/content"
	"github.com/emberforge/ember-server-go/internal/game/selector"
)

type fakeEntity struct {
	id         string
	name       string
	cardID     string
	zone       selector.Zone
	typ        selector.CardType
	race       selector.Race
	controller Entity
	owner      Entity
	target     Entity
	tags       map[selector.Tag]int
	damage     int
	health     int
	destroyed  bool
	ignore     bool

	requiresTarget bool
	chooseOptions  []string
	chosen         Entity

	regs         []*Registration
	deathrattles []Followup
}

func newFake(name string, typ selector.CardType, zone selector.Zone, controller Entity) *fakeEntity {
	return &fakeEntity{
		id:     name,
		name:   name,
		typ:    typ,
		zone:   zone,
		health: 10,
		tags:   make(map[selector.Tag]int),

		controller: controller,
	}
}

func (f *fakeEntity) EntityID() string        { return f.id }
func (f *fakeEntity) Name() string            { return f.name }
func (f *fakeEntity) CardID() string          { return f.cardID }
func (f *fakeEntity) Zone() selector.Zone     { return f.zone }
func (f *fakeEntity) Type() selector.CardType { return f.typ }
func (f *fakeEntity) Race() selector.Race     { return f.race }
func (f *fakeEntity) Controller() Entity      { return f.controller }
func (f *fakeEntity) Owner() Entity           { return f.owner }
func (f *fakeEntity) AbilityTarget() Entity   { return f.target }
func (f *fakeEntity) Tag(t selector.Tag) int  { return f.tags[t] }
func (f *fakeEntity) Dead() bool              { return f.destroyed || f.health-f.damage <= 0 }
func (f *fakeEntity) Adjacent() []Entity      { return nil }
func (f *fakeEntity) SetZone(z selector.Zone) { f.zone = z }
func (f *fakeEntity) SetController(e Entity)  { f.controller = e }
func (f *fakeEntity) SetTag(t selector.Tag, v int) {
	f.tags[t] = v
}

func (f *fakeEntity) Hit(source Entity, amount int) int {
	f.damage += amount
	return amount
}
func (f *fakeEntity) DamageTaken() int         { return f.damage }
func (f *fakeEntity) SetDamageTaken(n int)     { f.damage = n }
func (f *fakeEntity) Health() int              { return f.health }
func (f *fakeEntity) Destroy()                 { f.destroyed = true }
func (f *fakeEntity) Bounce()                  { f.zone = selector.ZoneHand }
func (f *fakeEntity) Silence()                 { f.regs = nil }
func (f *fakeEntity) Morph(into Entity)        {}
func (f *fakeEntity) ApplyBuff(buff Entity)    {}
func (f *fakeEntity) Deathrattles() []Followup { return f.deathrattles }

func (f *fakeEntity) RequiresTarget() bool      { return f.requiresTarget }
func (f *fakeEntity) SetAbilityTarget(e Entity) { f.target = e }
func (f *fakeEntity) ChooseOptions() []string   { return f.chooseOptions }
func (f *fakeEntity) SetChosen(e Entity)        { f.chosen = e }

func (f *fakeEntity) Registrations() []*Registration { return f.regs }
func (f *fakeEntity) Attach(regs ...*Registration)   { f.regs = append(f.regs, regs...) }
func (f *fakeEntity) RemoveRegistration(reg *Registration) {
	for i, r := range f.regs {
		if r == reg {
			f.regs = append(f.regs[:i], f.regs[i+1:]...)
			return
		}
	}
}
func (f *fakeEntity) IgnoreEvents() bool { return f.ignore }

type fakeGame struct {
	t        *testing.T
	entities []Entity
	queued   []QueuedAction
	rng      *rand.Rand
	deaths   int
	plays    int
}

func newFakeGame(t *testing.T, entities ...Entity) *fakeGame {
	return &fakeGame{t: t, entities: entities, rng: rand.New(rand.NewSource(1))}
}

func (g *fakeGame) Entities() []Entity { return g.entities }

func (g *fakeGame) Card(id string) (Entity, error) {
	c := newFake(id, selector.TypeMinion, selector.ZoneSetAside, nil)
	c.cardID = id
	return c, nil
}

func (g *fakeGame) FilterCards(f content.Filter) []string { return nil }

func (g *fakeGame) QueueActions(source Entity, actions []Action) {
	for _, a := range actions {
		g.queued = append(g.queued, QueuedAction{Owner: source, Action: a})
	}
}

func (g *fakeGame) ProcessDeaths() { g.deaths++ }

func (g *fakeGame) ActionStarted(t Type, source Entity, payload []any) {}
func (g *fakeGame) ActionEnded(t Type, source Entity, payload []any)   {}

func (g *fakeGame) Rand() *rand.Rand { return g.rng }

func (g *fakeGame) Logger() *zap.Logger { return zaptest.NewLogger(g.t) }

func (g *fakeGame) ResolveAttack(attacker, defender Entity) error { return nil }
func (g *fakeGame) ResolvePlay(card Entity) error                 { g.plays++; return nil }
func (g *fakeGame) StartTurn(player Entity) error                 { return nil }
func (g *fakeGame) FinishTurn(player Entity) error                { return nil }

func TestSequenceStampsStrictlyIncrease(t *testing.T) {
	actions := []Action{Draw(nil), Hit(nil, 1), Destroy(nil), Deaths()}
	for i := 1; i < len(actions); i++ {
		assert.Greater(t, actions[i].Sequence(), actions[i-1].Sequence())
	}
}

func TestArgMatching(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	m := newFake("m", selector.TypeMinion, selector.ZonePlay, p1)
	other := newFake("other", selector.TypeMinion, selector.ZonePlay, p1)

	tests := []struct {
		name string
		pat  any
		got  any
		want bool
	}{
		{"nil is wildcard", nil, m, true},
		{"entity requires identity", Entity(m), m, true},
		{"entity mismatch", Entity(m), other, false},
		{"zero int is wildcard", 0, 7, true},
		{"nonzero int requires equality", 3, 3, true},
		{"nonzero int mismatch", 3, 4, false},
		{"selector singleton match", selector.Minion, m, true},
		{"selector singleton mismatch", selector.Hero, m, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, argMatches(tt.pat, tt.got, m))
		})
	}
}

func TestBroadcastQueuesMatchingFollowups(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	listener := newFake("listener", selector.TypeMinion, selector.ZonePlay, p1)
	victim := newFake("victim", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, listener, victim)

	var seen Entity
	listener.Attach(On(Damage(nil, 0), Producer(func(self Entity, payload ...any) []Action {
		seen = payload[0].(Entity)
		return []Action{Draw(self.Controller())}
	})))

	_, err := Damage(victim, 3).Trigger(p1, g)
	require.NoError(t, err)

	require.Len(t, g.queued, 1)
	assert.Same(t, listener, g.queued[0].Owner.(*fakeEntity))
	assert.Equal(t, TypeDraw, g.queued[0].Action.ActionType())
	assert.Same(t, victim, seen.(*fakeEntity))
	assert.Equal(t, 3, victim.damage)
}

func TestZeroDamageDoesNotNotify(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	listener := newFake("listener", selector.TypeMinion, selector.ZonePlay, p1)
	victim := newFake("victim", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, listener, victim)

	listener.Attach(On(Damage(nil, 0), Draw(p1)))

	_, err := Damage(victim, 0).Trigger(p1, g)
	require.NoError(t, err)
	assert.Empty(t, g.queued)
}

func TestOnceFiresAtMostOnce(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	listener := newFake("listener", selector.TypeMinion, selector.ZonePlay, p1)
	victim := newFake("victim", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, listener, victim)

	listener.Attach(Once(Damage(nil, 0), Draw(p1)))

	_, err := Damage(victim, 1).Trigger(p1, g)
	require.NoError(t, err)
	_, err = Damage(victim, 1).Trigger(p1, g)
	require.NoError(t, err)

	assert.Len(t, g.queued, 1)
	assert.Empty(t, listener.regs)
}

func TestRegistrationZoneGatesFiring(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	inHand := newFake("inHand", selector.TypeMinion, selector.ZoneHand, p1)
	secret := newFake("secret", selector.TypeSecret, selector.ZoneSecret, p1)
	victim := newFake("victim", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, inHand, secret, victim)

	// Default registrations only fire from play.
	inHand.Attach(On(Damage(nil, 0), Draw(p1)))
	// Secrets re-home their registration to the secret zone.
	secret.Attach(On(Damage(nil, 0), Draw(p1)).InZone(selector.ZoneSecret))

	_, err := Damage(victim, 2).Trigger(p1, g)
	require.NoError(t, err)

	require.Len(t, g.queued, 1)
	assert.Same(t, secret, g.queued[0].Owner.(*fakeEntity))
}

func TestIgnoredEntitiesAreSkipped(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	listener := newFake("listener", selector.TypeMinion, selector.ZonePlay, p1)
	listener.ignore = true
	victim := newFake("victim", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, listener, victim)

	listener.Attach(On(Damage(nil, 0), Draw(p1)))

	_, err := Damage(victim, 2).Trigger(p1, g)
	require.NoError(t, err)
	assert.Empty(t, g.queued)
}

func TestGatherOrdersBySequenceStamp(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	first := newFake("first", selector.TypeMinion, selector.ZonePlay, p1)
	second := newFake("second", selector.TypeMinion, selector.ZonePlay, p1)
	dying := newFake("dying", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, first, second, dying)

	earlier := Hit(p1, 1)
	later := Hit(p1, 2)

	// Registration order is deliberately reversed: the later-created
	// effect sits on the entity scanned first.
	first.Attach(On(Death(nil), later))
	second.Attach(On(Death(nil), earlier))

	d := Death(dying)
	queued := d.gather(g, PhaseOn, dying)

	require.Len(t, queued, 2)
	assert.Equal(t, earlier.Sequence(), queued[0].Action.Sequence())
	assert.Equal(t, later.Sequence(), queued[1].Action.Sequence())
}

func TestDeathQueuesTriggersAndDeathrattlesInOrder(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	watcher := newFake("watcher", selector.TypeMinion, selector.ZonePlay, p1)
	dying := newFake("dying", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, watcher, dying)

	rattle := Draw(p1)
	reaction := Hit(p1, 1)
	dying.deathrattles = []Followup{rattle}
	watcher.Attach(On(Death(nil), reaction))

	_, err := Death(dying).Trigger(dying, g)
	require.NoError(t, err)

	require.Len(t, g.queued, 2)
	assert.Equal(t, rattle.Sequence(), g.queued[0].Action.Sequence())
	assert.Equal(t, reaction.Sequence(), g.queued[1].Action.Sequence())
}

func TestActionTargetsResolveToFirstResultList(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	listener := newFake("listener", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, listener)

	// Unit level: an action in target position is triggered and its first
	// result list becomes the target set.
	got, err := resolveEntities(Give(p1, "TOKEN"), p1, g)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "TOKEN", got[0].(Card).CardID())
	assert.Equal(t, selector.ZoneHand, got[0].Zone())

	// Chained: the damage lands on the entity the inner Give produced.
	var seen Entity
	listener.Attach(On(Damage(nil, 0), Producer(func(self Entity, payload ...any) []Action {
		seen = payload[0].(Entity)
		return nil
	})))

	_, err = Damage(Give(p1, "TOKEN"), 2).Trigger(p1, g)
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, "TOKEN", seen.(Card).CardID())
	assert.Equal(t, 2, seen.(*fakeEntity).damage)
}

func TestAfterRegistrationsFirePostResolution(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	card := newFake("card", selector.TypeSpell, selector.ZoneHand, p1)
	listener := newFake("listener", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, card, listener)

	onAt, afterAt := -1, -1
	listener.Attach(On(Play(nil, nil, ""), Producer(func(self Entity, _ ...any) []Action {
		onAt = g.plays
		return nil
	})))
	listener.Attach(After(Play(nil, nil, ""), Producer(func(self Entity, _ ...any) []Action {
		afterAt = g.plays
		return []Action{Draw(p1)}
	})))

	_, err := Play(card, nil, "").Trigger(p1, g)
	require.NoError(t, err)

	assert.Equal(t, 0, onAt, "ON fires before the play resolves")
	assert.Equal(t, 1, afterAt, "AFTER fires once the play has resolved")
	require.Len(t, g.queued, 1)
	assert.Equal(t, TypeDraw, g.queued[0].Action.ActionType())
}

func TestRepeatsReResolveTargets(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	m1 := newFake("m1", selector.TypeMinion, selector.ZonePlay, p1)
	m2 := newFake("m2", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, m1, m2)

	evals := 0
	counting := selector.Match("counting", func(e, _ selector.Entity) bool {
		evals++
		return e.Name() == "m1"
	})

	_, err := Times(Hit(counting, 1), 3).Trigger(p1, g)
	require.NoError(t, err)

	// Each repeat walks the full entity collection again.
	assert.Equal(t, 3*len(g.entities), evals)
	assert.Equal(t, 3, m1.damage)
	assert.Equal(t, 0, m2.damage)
}

func TestEvaluatorBranches(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	alive := newFake("alive", selector.TypeMinion, selector.ZonePlay, p1)
	casualty := newFake("casualty", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, alive, casualty)

	_, err := Dead(selector.Match("casualty", func(e, _ selector.Entity) bool {
		return e.Name() == "casualty"
	})).Then(Hit(alive, 5)).Else(Hit(alive, 1)).Trigger(p1, g)
	require.NoError(t, err)
	assert.Equal(t, 1, alive.damage, "else branch while the casualty lives")

	casualty.destroyed = true
	_, err = Dead(selector.Match("casualty", func(e, _ selector.Entity) bool {
		return e.Name() == "casualty"
	})).Then(Hit(alive, 5)).Else(Hit(alive, 1)).Trigger(p1, g)
	require.NoError(t, err)
	assert.Equal(t, 6, alive.damage, "then branch once the casualty is dead")
}

func TestFindCountsMatches(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	m1 := newFake("m1", selector.TypeMinion, selector.ZonePlay, p1)
	m2 := newFake("m2", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, m1, m2)

	_, err := Find(selector.AllMinions, 2).Then(Hit(m1, 1)).Trigger(p1, g)
	require.NoError(t, err)
	assert.Equal(t, 1, m1.damage)

	_, err = Find(selector.AllMinions, 3).Then(Hit(m1, 1)).Else(Hit(m2, 1)).Trigger(p1, g)
	require.NoError(t, err)
	assert.Equal(t, 1, m1.damage)
	assert.Equal(t, 1, m2.damage)
}

func TestPlayRequiresTarget(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	card := newFake("card", selector.TypeSpell, selector.ZoneHand, p1)
	card.requiresTarget = true
	g := newFakeGame(t, p1, card)

	_, err := Play(card, nil, "").Trigger(p1, g)
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestPlayRejectsInvalidChoice(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	card := newFake("card", selector.TypeSpell, selector.ZoneHand, p1)
	card.chooseOptions = []string{"MODE_A", "MODE_B"}
	g := newFakeGame(t, p1, card)

	_, err := Play(card, nil, "MODE_C").Trigger(p1, g)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestPlayClearsTransientState(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	card := newFake("card", selector.TypeSpell, selector.ZoneHand, p1)
	victim := newFake("victim", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, card, victim)

	_, err := Play(card, victim, "").Trigger(p1, g)
	require.NoError(t, err)
	assert.Nil(t, card.target)
	assert.Nil(t, card.chosen)
}

func TestResolveCardsFromIdentifiers(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	g := newFakeGame(t, p1)

	cards, err := resolveCards([]string{"A", "B"}, p1, g)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "A", cards[0].(Card).CardID())
	assert.Equal(t, "B", cards[1].(Card).CardID())
}

func TestCopyResolvesFreshInstances(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	orig := newFake("orig", selector.TypeMinion, selector.ZonePlay, p1)
	orig.cardID = "ORIG"
	g := newFakeGame(t, p1, orig)

	cards, err := resolveCards(Copy(selector.AllMinions), p1, g)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "ORIG", cards[0].(Card).CardID())
	assert.NotSame(t, orig, cards[0].(*fakeEntity))
}

func TestRandomCardErrorsOnEmptyPool(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	g := newFakeGame(t, p1)

	_, err := resolveCards(RandomCard(content.Filter{}), p1, g)
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestSwapRequiresSingleCounterpart(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	target := newFake("target", selector.TypeMinion, selector.ZoneHand, p1)
	o1 := newFake("o1", selector.TypeMinion, selector.ZonePlay, p1)
	o2 := newFake("o2", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, target, o1, o2)

	_, err := Swap(target, selector.AllMinions).Trigger(p1, g)
	assert.ErrorIs(t, err, ErrSwapArity)

	_, err = Swap(target, o1).Trigger(p1, g)
	require.NoError(t, err)
	assert.Equal(t, selector.ZonePlay, target.zone)
	assert.Equal(t, selector.ZoneHand, o1.zone)
}

func TestHealClampsAndRespectsModifiers(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	hurt := newFake("hurt", selector.TypeMinion, selector.ZonePlay, p1)
	hurt.damage = 3
	g := newFakeGame(t, p1, hurt)

	_, err := Heal(hurt, 10).Trigger(p1, g)
	require.NoError(t, err)
	assert.Equal(t, 0, hurt.damage, "heal clamps to outstanding damage")

	hurt.damage = 4
	p1.tags[selector.TagHealingDouble] = 1
	_, err = Heal(hurt, 1).Trigger(p1, g)
	require.NoError(t, err)
	assert.Equal(t, 2, hurt.damage, "healing double modifier applies")

	p1.tags[selector.TagHealingDouble] = 0
	p1.tags[selector.TagHealingAsDamage] = 1
	_, err = Heal(hurt, 2).Trigger(p1, g)
	require.NoError(t, err)
	assert.Equal(t, 4, hurt.damage, "healing-as-damage hits instead")
}

func TestHealNoOpOnUndamaged(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	fresh := newFake("fresh", selector.TypeMinion, selector.ZonePlay, p1)
	listener := newFake("listener", selector.TypeMinion, selector.ZonePlay, p1)
	listener.Attach(On(Heal(nil, 0), Draw(p1)))
	g := newFakeGame(t, p1, fresh, listener)

	_, err := Heal(fresh, 5).Trigger(p1, g)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.damage)
	assert.Empty(t, g.queued, "no heal notification for a zero applied amount")
}

func TestTriggerMatchingIsPositional(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p2 := newFake("p2", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	p2.controller = p2
	friendly := newFake("friendly", selector.TypeMinion, selector.ZonePlay, p1)
	enemy := newFake("enemy", selector.TypeMinion, selector.ZonePlay, p2)
	listener := newFake("watcher", selector.TypeMinion, selector.ZonePlay, p1)
	g := newFakeGame(t, p1, p2, friendly, enemy, listener)

	// Only damage to friendly minions matters to this listener.
	listener.Attach(On(Damage(selector.FriendlyMinions, 0), Draw(p1)))

	_, err := Damage(enemy, 2).Trigger(friendly, g)
	require.NoError(t, err)
	assert.Empty(t, g.queued)

	_, err = Damage(friendly, 2).Trigger(friendly, g)
	require.NoError(t, err)
	assert.Len(t, g.queued, 1)
}

func TestExtraDeathrattlesModifier(t *testing.T) {
	p1 := newFake("p1", selector.TypePlayer, selector.ZonePlay, nil)
	p1.controller = p1
	dying := newFake("dying", selector.TypeMinion, selector.ZonePlay, p1)
	dying.deathrattles = []Followup{Draw(p1)}
	g := newFakeGame(t, p1, dying)

	p1.tags[selector.TagExtraDeathrattles] = 1
	_, err := Deathrattle(dying).Trigger(p1, g)
	require.NoError(t, err)
	assert.Len(t, g.queued, 2)
}

func TestQueueNamesAreStable(t *testing.T) {
	// Variant tags name events on the observer stream; renames break
	// consumers.
	for _, tc := range []struct {
		action Action
		want   Type
	}{
		{Attack(nil, nil), TypeAttack},
		{Death(nil), TypeDeath},
		{Summon(nil, "X"), TypeSummon},
		{Give(nil, "X"), TypeGive},
	} {
		assert.Equal(t, tc.want, tc.action.ActionType(), fmt.Sprintf("%T", tc.action))
	}
}
