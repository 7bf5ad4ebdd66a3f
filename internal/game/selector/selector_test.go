package selector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEntity struct {
	id         string
	zone       Zone
	cardType   CardType
	race       Race
	controller Entity
	owner      Entity
	target     Entity
	tags       map[Tag]int
	dead       bool
	adjacent   []Entity
}

func (s *stubEntity) EntityID() string      { return s.id }
func (s *stubEntity) Name() string          { return s.id }
func (s *stubEntity) Zone() Zone            { return s.zone }
func (s *stubEntity) Type() CardType        { return s.cardType }
func (s *stubEntity) Race() Race            { return s.race }
func (s *stubEntity) Controller() Entity    { return s.controller }
func (s *stubEntity) Owner() Entity         { return s.owner }
func (s *stubEntity) AbilityTarget() Entity { return s.target }
func (s *stubEntity) Dead() bool            { return s.dead }
func (s *stubEntity) Adjacent() []Entity    { return s.adjacent }

func (s *stubEntity) Tag(t Tag) int {
	return s.tags[t]
}

type board struct {
	p1, p2   *stubEntity
	entities []Entity
}

// newBoard builds two players with three friendly and two enemy minions in
// play, one card in each hand.
func newBoard() *board {
	p1 := &stubEntity{id: "p1", zone: ZonePlay, cardType: TypePlayer}
	p1.controller = p1
	p2 := &stubEntity{id: "p2", zone: ZonePlay, cardType: TypePlayer}
	p2.controller = p2

	b := &board{p1: p1, p2: p2}
	b.entities = []Entity{p1, p2}
	for _, m := range []struct {
		id   string
		ctrl *stubEntity
		zone Zone
		race Race
	}{
		{"m1", p1, ZonePlay, RaceNone},
		{"m2", p1, ZonePlay, RaceBeast},
		{"m3", p1, ZonePlay, RaceNone},
		{"e1", p2, ZonePlay, RaceNone},
		{"e2", p2, ZonePlay, RaceMurloc},
		{"h1", p1, ZoneHand, RaceNone},
		{"h2", p2, ZoneHand, RaceNone},
	} {
		b.entities = append(b.entities, &stubEntity{
			id: m.id, zone: m.zone, cardType: TypeMinion, race: m.race,
			controller: m.ctrl, tags: map[Tag]int{},
		})
	}
	return b
}

func (b *board) find(id string) *stubEntity {
	for _, e := range b.entities {
		if e.EntityID() == id {
			return e.(*stubEntity)
		}
	}
	return nil
}

func ids(entities []Entity) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.EntityID())
	}
	return out
}

func ctx(source Entity) Context {
	return Context{Source: source, Rand: rand.New(rand.NewSource(1))}
}

func TestEvalEmptyInput(t *testing.T) {
	b := newBoard()
	assert.Empty(t, AllMinions.Eval(nil, ctx(b.p1)))
	assert.Empty(t, AllMinions.Eval([]Entity{}, ctx(b.p1)))
}

func TestZoneAndTypeSelectors(t *testing.T) {
	b := newBoard()
	got := AllMinions.Eval(b.entities, ctx(b.p1))
	assert.ElementsMatch(t, []string{"m1", "m2", "m3", "e1", "e2"}, ids(got))

	got = AndOf(InHand, Minion).Eval(b.entities, ctx(b.p1))
	assert.ElementsMatch(t, []string{"h1", "h2"}, ids(got))
}

func TestAffiliationSelectors(t *testing.T) {
	b := newBoard()
	got := FriendlyMinions.Eval(b.entities, ctx(b.p1))
	assert.ElementsMatch(t, []string{"m1", "m2", "m3"}, ids(got))

	got = EnemyMinions.Eval(b.entities, ctx(b.p1))
	assert.ElementsMatch(t, []string{"e1", "e2"}, ids(got))

	// Same program, other player's point of view.
	got = EnemyMinions.Eval(b.entities, ctx(b.p2))
	assert.ElementsMatch(t, []string{"m1", "m2", "m3"}, ids(got))
}

func TestUnionEqualsSetUnion(t *testing.T) {
	b := newBoard()
	a := FriendlyMinions
	c := EnemyMinions
	union := OrOf(a, c).Eval(b.entities, ctx(b.p1))

	want := append(ids(a.Eval(b.entities, ctx(b.p1))), ids(c.Eval(b.entities, ctx(b.p1)))...)
	assert.ElementsMatch(t, want, ids(union))
}

func TestDifferenceRemovesMatches(t *testing.T) {
	b := newBoard()
	beast := RaceIs(RaceBeast)
	got := DifferenceOf(FriendlyMinions, beast).Eval(b.entities, ctx(b.p1))
	assert.ElementsMatch(t, []string{"m1", "m3"}, ids(got))

	// Difference against self from a minion's point of view.
	m2 := b.find("m2")
	got = DifferenceOf(FriendlyMinions, Self).Eval(b.entities, ctx(m2))
	assert.ElementsMatch(t, []string{"m1", "m3"}, ids(got))
}

func TestNoShortCircuit(t *testing.T) {
	b := newBoard()
	calls := 0
	counting := Match("counting", func(e, _ Entity) bool {
		calls++
		return true
	})
	never := Match("never", func(e, _ Entity) bool { return false })

	// Left operand is false for every entity; the right operand must still
	// be evaluated for every entity.
	AndOf(never, counting).Eval(b.entities, ctx(b.p1))
	assert.Equal(t, len(b.entities), calls)
}

func TestTagSelectors(t *testing.T) {
	b := newBoard()
	b.find("m1").tags[TagDamage] = 2
	b.find("e1").tags[TagDamage] = 1

	got := AndOf(FriendlyMinions, Damaged).Eval(b.entities, ctx(b.p1))
	assert.ElementsMatch(t, []string{"m1"}, ids(got))

	got = DamagedCharacters.Eval(b.entities, ctx(b.p1))
	assert.ElementsMatch(t, []string{"m1", "e1"}, ids(got))
}

func TestRandomSampleSizeAndMembership(t *testing.T) {
	b := newBoard()
	sel := Random(FriendlyMinions).Times(2)
	got := sel.Eval(b.entities, ctx(b.p1))
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0], got[1])
	assert.Subset(t, []string{"m1", "m2", "m3"}, ids(got))

	// Requesting more than available clamps to the pool size.
	got = Random(FriendlyMinions).Times(10).Eval(b.entities, ctx(b.p1))
	assert.Len(t, got, 3)
}

func TestRandomTimesIsMultiplicative(t *testing.T) {
	sel := Random(AllMinions).Times(2).Times(3)
	b := newBoard()
	got := sel.Eval(b.entities, ctx(b.p1))
	// 2*3 = 6 requested, 5 minions available.
	assert.Len(t, got, 5)
}

func TestRandomFallback(t *testing.T) {
	b := newBoard()
	spare := &stubEntity{id: "spare", cardType: TypeSpell}
	none := Match("none", func(_, _ Entity) bool { return false })

	got := Random(none).Fallback(spare).Eval(b.entities, ctx(b.p1))
	require.Len(t, got, 1)
	assert.Equal(t, "spare", got[0].EntityID())

	// Without a fallback an empty pool yields an empty result.
	assert.Empty(t, Random(none).Eval(b.entities, ctx(b.p1)))
}

func TestRandomIsSeedDeterministic(t *testing.T) {
	b := newBoard()
	sel := Random(AllMinions).Times(2)

	first := ids(sel.Eval(b.entities, Context{Source: b.p1, Rand: rand.New(rand.NewSource(7))}))
	second := ids(sel.Eval(b.entities, Context{Source: b.p1, Rand: rand.New(rand.NewSource(7))}))
	assert.Equal(t, first, second)
}

func TestAdjacentExpandsBoardNeighbors(t *testing.T) {
	b := newBoard()
	m1, m2, m3 := b.find("m1"), b.find("m2"), b.find("m3")
	m1.adjacent = []Entity{m2}
	m2.adjacent = []Entity{m1, m3}
	m3.adjacent = []Entity{m2}

	got := SelfAdjacent.Eval(b.entities, ctx(m2))
	assert.ElementsMatch(t, []string{"m1", "m3"}, ids(got))
}

func TestMergeSegmentsRefilterOriginalInput(t *testing.T) {
	b := newBoard()
	m2 := b.find("m2")
	m1, m3 := b.find("m1"), b.find("m3")
	m2.adjacent = []Entity{m1, m3}
	m1.adjacent = []Entity{m2}
	m3.adjacent = []Entity{m2}

	// Two independent merge segments: each filters from the original
	// input, the second is not chained onto the first one's output.
	sel := OrOf(Adjacent(Self), Adjacent(RaceIs(RaceBeast)))
	got := sel.Eval(b.entities, ctx(m2))
	// Adjacent(Self) from m2 -> m1, m3; Adjacent(beast m2) -> m1, m3.
	assert.Equal(t, []string{"m1", "m3", "m1", "m3"}, ids(got))
}

func TestMergeDifferenceSubtractsSample(t *testing.T) {
	b := newBoard()
	sel := DifferenceOf(FriendlyMinions, Random(FriendlyMinions).Selector)
	got := sel.Eval(b.entities, ctx(b.p1))
	assert.Len(t, got, 2)
}

func TestTargetRelativeSelectors(t *testing.T) {
	b := newBoard()
	spell := &stubEntity{id: "spell", zone: ZonePlay, cardType: TypeSpell, controller: b.p1}
	spell.target = b.find("e1")
	all := append(b.entities, spell)

	got := TargetEntity.Eval(all, ctx(spell))
	assert.Equal(t, []string{"e1"}, ids(got))

	got = ControlledByTarget.Eval(all, ctx(spell))
	assert.ElementsMatch(t, []string{"p2", "e1", "e2", "h2"}, ids(got))
}

func TestSelectorString(t *testing.T) {
	s := DifferenceOf(AndOf(InPlay, Minion), Self)
	assert.Equal(t, "PLAY MINION and SELF not and", s.String())
}
