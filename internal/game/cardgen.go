package game

import (
	"errors"

	"github.com/emberforge/ember-server-go/internal/content"
)

// ErrEmptyPool is returned when a random card pick filters the content
// pool down to nothing.
var ErrEmptyPool = errors.New("random card pool is empty")

// RandomCardPick holds a content filter and resolves to one concrete card
// only when the owning effect executes, so the pool reflects current
// legality rather than construction-time state.
type RandomCardPick struct {
	filter content.Filter
}

// RandomCard defers a uniform random pick over the filtered content pool.
func RandomCard(filter content.Filter) *RandomCardPick {
	return &RandomCardPick{filter: filter}
}

func (r *RandomCardPick) pick(g Game) (Entity, error) {
	ids := g.FilterCards(r.filter)
	if len(ids) == 0 {
		return nil, ErrEmptyPool
	}
	return g.Card(ids[g.Rand().Intn(len(ids))])
}

// CopyOf defers a selector evaluation and resolves to one fresh instance
// per matched live entity, sharing its content identifier.
type CopyOf struct {
	sel any
}

// Copy builds copies of whatever the selector matches at execution time.
func Copy(sel any) *CopyOf {
	return &CopyOf{sel: sel}
}

// resolveCards resolves a deferred card argument at execution time. The
// argument can be a content identifier (or a list of them), a live entity,
// a random-content generator, or a selector-backed copy request.
func resolveCards(v any, source Entity, g Game) ([]Entity, error) {
	switch t := v.(type) {
	case string:
		card, err := g.Card(t)
		if err != nil {
			return nil, err
		}
		return []Entity{card}, nil
	case []string:
		out := make([]Entity, 0, len(t))
		for _, id := range t {
			card, err := g.Card(id)
			if err != nil {
				return nil, err
			}
			out = append(out, card)
		}
		return out, nil
	case *RandomCardPick:
		card, err := t.pick(g)
		if err != nil {
			return nil, err
		}
		return []Entity{card}, nil
	case *CopyOf:
		matched, err := resolveEntities(t.sel, source, g)
		if err != nil {
			return nil, err
		}
		out := make([]Entity, 0, len(matched))
		for _, e := range matched {
			c, err := asCard(e)
			if err != nil {
				return nil, err
			}
			fresh, err := g.Card(c.CardID())
			if err != nil {
				return nil, err
			}
			out = append(out, fresh)
		}
		return out, nil
	case Entity:
		return []Entity{t}, nil
	case []Entity:
		return t, nil
	default:
		return nil, ErrNotCard
	}
}
