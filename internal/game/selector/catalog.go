package selector

// Atomic predicate constructors.

// ZoneIs matches entities in the given zone.
func ZoneIs(z Zone) Selector {
	return Match(z.String(), func(e, _ Entity) bool { return e.Zone() == z })
}

// TypeIs matches entities of the given card type.
func TypeIs(t CardType) Selector {
	return Match(t.String(), func(e, _ Entity) bool { return e.Type() == t })
}

// RaceIs matches minions of the given race.
func RaceIs(r Race) Selector {
	return Match("race", func(e, _ Entity) bool { return e.Race() == r })
}

// HasTag matches entities whose tag value is nonzero.
func HasTag(t Tag) Selector {
	return Match("tag", func(e, _ Entity) bool { return e.Tag(t) != 0 })
}

// AffiliationIs matches entities by their controller's relationship to the
// acting source.
func AffiliationIs(a Affiliation) Selector {
	switch a {
	case AffiliationFriendly:
		return Match("FRIENDLY", func(e, source Entity) bool {
			return source != nil && e.Controller() == source.Controller()
		})
	case AffiliationHostile:
		return Match("ENEMY", func(e, source Entity) bool {
			return source != nil && e.Controller() != nil && e.Controller() != source.Controller()
		})
	case AffiliationTargetControlled:
		return Match("TARGET_CONTROLLED", func(e, source Entity) bool {
			if source == nil || source.AbilityTarget() == nil {
				return false
			}
			return e.Controller() == source.AbilityTarget().Controller()
		})
	}
	return Match("NO_AFFILIATION", func(_, _ Entity) bool { return false })
}

// Source-relative selectors.
var (
	// Self selects the acting source itself.
	Self = Match("SELF", func(e, source Entity) bool { return e == source })

	// OwnerOf selects the entity the source is attached to.
	OwnerOf = Match("OWNER", func(e, source Entity) bool {
		return source != nil && source.Owner() == e
	})

	// TargetEntity selects the source's current ability target.
	TargetEntity = Match("TARGET", func(e, source Entity) bool {
		return source != nil && source.AbilityTarget() == e
	})
)

// Tag selectors.
var (
	Damaged         = Match("DAMAGED", func(e, _ Entity) bool { return e.Tag(TagDamage) > 0 })
	WithDeathrattle = HasTag(TagDeathrattle)
	WithOverload    = HasTag(TagOverload)
)

// Zone selectors.
var (
	InPlay = ZoneIs(ZonePlay)
	InDeck = ZoneIs(ZoneDeck)
	InHand = ZoneIs(ZoneHand)
	Hidden = ZoneIs(ZoneSecret)
)

// Affiliation selectors.
var (
	Friendly           = AffiliationIs(AffiliationFriendly)
	Enemy              = AffiliationIs(AffiliationHostile)
	ControlledByTarget = AffiliationIs(AffiliationTargetControlled)
)

// Type selectors.
var (
	AllPlayers = TypeIs(TypePlayer)
	Hero       = TypeIs(TypeHero)
	Minion     = TypeIs(TypeMinion)
	Character  = OrOf(Minion, Hero)
	Weapon     = TypeIs(TypeWeapon)
	Spell      = TypeIs(TypeSpell)
	Secret     = TypeIs(TypeSecret)
	HeroPower  = TypeIs(TypeHeroPower)
)

// Race selectors.
var (
	Beast  = RaceIs(RaceBeast)
	Demon  = RaceIs(RaceDemon)
	Mech   = RaceIs(RaceMechanical)
	Murloc = RaceIs(RaceMurloc)
	Pirate = RaceIs(RacePirate)
	Totem  = RaceIs(RaceTotem)
)

// Precomposed unions and intersections.
var (
	Controller   = AndOf(AllPlayers, Friendly)
	Opponent     = AndOf(AllPlayers, Enemy)
	TargetPlayer = AndOf(AllPlayers, ControlledByTarget)

	ControllerHand = AndOf(InHand, Friendly)
	ControllerDeck = AndOf(InDeck, Friendly)
	OpponentHand   = AndOf(InHand, Enemy)
	OpponentDeck   = AndOf(InDeck, Enemy)

	AllHeroes     = AndOf(InPlay, Hero)
	AllMinions    = AndOf(InPlay, Minion)
	AllCharacters = AndOf(InPlay, Character)
	AllWeapons    = AndOf(InPlay, Weapon)
	AllSecrets    = AndOf(Hidden, Secret)
	AllHeroPowers = AndOf(InPlay, HeroPower)

	FriendlyHero       = AndOf(InPlay, Friendly, Hero)
	FriendlyMinions    = AndOf(InPlay, Friendly, Minion)
	FriendlyCharacters = AndOf(InPlay, Friendly, Character)
	FriendlyWeapon     = AndOf(InPlay, Friendly, Weapon)
	FriendlySecrets    = AndOf(Hidden, Friendly, Secret)
	EnemyHero          = AndOf(InPlay, Enemy, Hero)
	EnemyMinions       = AndOf(InPlay, Enemy, Minion)
	EnemyCharacters    = AndOf(InPlay, Enemy, Character)
	EnemyWeapon        = AndOf(InPlay, Enemy, Weapon)
	EnemySecrets       = AndOf(Hidden, Enemy, Secret)

	SelfAdjacent   = Adjacent(Self)
	TargetAdjacent = Adjacent(TargetEntity)

	DamagedCharacters = AndOf(AllCharacters, Damaged)
)

// Random selector constructors. These return fresh values so Times and
// Fallback never mutate a shared catalog entry.

func RandomMinion() RandomSelector            { return Random(AllMinions) }
func RandomCharacter() RandomSelector         { return Random(AllCharacters) }
func RandomFriendlyMinion() RandomSelector    { return Random(FriendlyMinions) }
func RandomFriendlyCharacter() RandomSelector { return Random(FriendlyCharacters) }
func RandomEnemyMinion() RandomSelector       { return Random(EnemyMinions) }
func RandomEnemyCharacter() RandomSelector    { return Random(EnemyCharacters) }
func RandomOtherFriendlyMinion() RandomSelector {
	return Random(DifferenceOf(FriendlyMinions, Self))
}
