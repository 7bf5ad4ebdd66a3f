// Package content holds the card-definition registry. Definitions are
// loaded from YAML; the registry is an explicit value passed to whatever
// needs content lookup or pool filtering, never a package global.
package content

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/emberforge/ember-server-go/internal/game/selector"
)

// Def is a single card definition.
type Def struct {
	ID          string
	Name        string
	Type        selector.CardType
	Race        selector.Race
	Cost        int
	Attack      int
	Health      int
	Class       string
	Collectible bool

	// RequiresTarget marks cards that cannot be played without a target.
	RequiresTarget bool

	// ChooseCards lists the alternate-mode card IDs for choose-one cards.
	ChooseCards []string
}

type defYAML struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Type           string   `yaml:"type"`
	Race           string   `yaml:"race"`
	Cost           int      `yaml:"cost"`
	Attack         int      `yaml:"attack"`
	Health         int      `yaml:"health"`
	Class          string   `yaml:"class"`
	Collectible    bool     `yaml:"collectible"`
	RequiresTarget bool     `yaml:"requires_target"`
	ChooseCards    []string `yaml:"choose_cards"`
}

type fileYAML struct {
	Cards []defYAML `yaml:"cards"`
}

var cardTypes = map[string]selector.CardType{
	"hero":        selector.TypeHero,
	"minion":      selector.TypeMinion,
	"spell":       selector.TypeSpell,
	"weapon":      selector.TypeWeapon,
	"hero_power":  selector.TypeHeroPower,
	"secret":      selector.TypeSecret,
	"enchantment": selector.TypeEnchantment,
}

var races = map[string]selector.Race{
	"":       selector.RaceNone,
	"beast":  selector.RaceBeast,
	"demon":  selector.RaceDemon,
	"dragon": selector.RaceDragon,
	"mech":   selector.RaceMechanical,
	"murloc": selector.RaceMurloc,
	"pirate": selector.RacePirate,
	"totem":  selector.RaceTotem,
}

// Registry is the card-definition pool.
type Registry struct {
	defs map[string]Def
}

// NewRegistry builds a registry from in-memory definitions. Used by tests
// and scripted content.
func NewRegistry(defs ...Def) *Registry {
	r := &Registry{defs: make(map[string]Def, len(defs))}
	for _, d := range defs {
		r.defs[d.ID] = d
	}
	return r
}

// Load reads card definitions from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileYAML
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse content YAML: %w", err)
	}

	r := &Registry{defs: make(map[string]Def, len(f.Cards))}
	for _, c := range f.Cards {
		t, ok := cardTypes[c.Type]
		if !ok {
			return nil, fmt.Errorf("card %q: unknown type %q", c.ID, c.Type)
		}
		race, ok := races[c.Race]
		if !ok {
			return nil, fmt.Errorf("card %q: unknown race %q", c.ID, c.Race)
		}
		r.defs[c.ID] = Def{
			ID:             c.ID,
			Name:           c.Name,
			Type:           t,
			Race:           race,
			Cost:           c.Cost,
			Attack:         c.Attack,
			Health:         c.Health,
			Class:          c.Class,
			Collectible:    c.Collectible,
			RequiresTarget: c.RequiresTarget,
			ChooseCards:    c.ChooseCards,
		}
	}
	return r, nil
}

// Get returns the definition for a content identifier.
func (r *Registry) Get(id string) (Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Len returns the number of definitions in the pool.
func (r *Registry) Len() int {
	return len(r.defs)
}

// Filter narrows the content pool. Zero-valued fields are wildcards.
type Filter struct {
	Type        selector.CardType
	Race        selector.Race
	Class       string
	Cost        *int
	Collectible *bool
}

func (f Filter) matches(d Def) bool {
	if f.Type != selector.TypeInvalid && d.Type != f.Type {
		return false
	}
	if f.Race != selector.RaceNone && d.Race != f.Race {
		return false
	}
	if f.Class != "" && d.Class != f.Class {
		return false
	}
	if f.Cost != nil && d.Cost != *f.Cost {
		return false
	}
	if f.Collectible != nil && d.Collectible != *f.Collectible {
		return false
	}
	return true
}

// Filter returns the identifiers matching f, sorted for determinism.
func (r *Registry) Filter(f Filter) []string {
	var out []string
	for id, d := range r.defs {
		if f.matches(d) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
