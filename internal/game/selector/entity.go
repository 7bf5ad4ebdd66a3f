package selector

// Zone is the logical location of an entity.
type Zone int

const (
	ZoneInvalid Zone = iota
	ZonePlay
	ZoneDeck
	ZoneHand
	ZoneSecret
	ZoneGraveyard
	ZoneSetAside
	ZoneRemoved
)

func (z Zone) String() string {
	switch z {
	case ZonePlay:
		return "PLAY"
	case ZoneDeck:
		return "DECK"
	case ZoneHand:
		return "HAND"
	case ZoneSecret:
		return "SECRET"
	case ZoneGraveyard:
		return "GRAVEYARD"
	case ZoneSetAside:
		return "SETASIDE"
	case ZoneRemoved:
		return "REMOVED"
	default:
		return "INVALID"
	}
}

// CardType is the closed set of entity kinds the engine understands.
type CardType int

const (
	TypeInvalid CardType = iota
	TypeGame
	TypePlayer
	TypeHero
	TypeMinion
	TypeSpell
	TypeEnchantment
	TypeWeapon
	TypeHeroPower
	TypeSecret
)

func (t CardType) String() string {
	switch t {
	case TypeGame:
		return "GAME"
	case TypePlayer:
		return "PLAYER"
	case TypeHero:
		return "HERO"
	case TypeMinion:
		return "MINION"
	case TypeSpell:
		return "SPELL"
	case TypeEnchantment:
		return "ENCHANTMENT"
	case TypeWeapon:
		return "WEAPON"
	case TypeHeroPower:
		return "HERO_POWER"
	case TypeSecret:
		return "SECRET"
	default:
		return "INVALID"
	}
}

// Race is the tribal tag carried by some minions.
type Race int

const (
	RaceNone Race = iota
	RaceBeast
	RaceDemon
	RaceDragon
	RaceMechanical
	RaceMurloc
	RacePirate
	RaceTotem
)

// Tag identifies an entry in an entity's tag map. Tags hold ints; a zero
// value means the tag is absent.
type Tag int

const (
	TagDamage Tag = iota + 1
	TagDeathrattle
	TagOverload
	TagAttacking
	TagDefending
	TagFrozen
	TagStealth
	TagTaunt
	TagSilenced
	TagHealingDouble
	TagHealingAsDamage
	TagExtraDeathrattles
	TagArmor
	TagCantAttack
)

// Affiliation relates an entity's controller to the acting source.
type Affiliation int

const (
	AffiliationFriendly Affiliation = iota + 1
	AffiliationHostile
	AffiliationTargetControlled
)

// Entity is the accessor contract the interpreter reads game state through.
// The selector package never mutates entities and never owns their
// lifecycle; predicates built on this interface must be side-effect-free.
type Entity interface {
	EntityID() string
	Name() string
	Zone() Zone
	Type() CardType
	Race() Race

	// Controller returns the player entity controlling this entity. A
	// player controls itself.
	Controller() Entity

	// Owner returns the entity this one is attached to or derived from,
	// or nil.
	Owner() Entity

	// AbilityTarget returns the entity currently targeted by this entity's
	// ability, or nil. Used by the target-relative selectors.
	AbilityTarget() Entity

	// Tag returns the value stored under the given tag, zero if unset.
	Tag(Tag) int

	Dead() bool

	// Adjacent returns the board neighbors of an in-play minion.
	Adjacent() []Entity
}
