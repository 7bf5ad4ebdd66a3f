package game

import (
	"sort"

	"github.com/google/uuid"

	"github.com/emberforge/ember-server-go/internal/game/selector"
)

// Phase is the dispatch phase of a trigger registration.
type Phase int

const (
	// PhaseOn fires concurrently with the event.
	PhaseOn Phase = 1
	// PhaseAfter fires once the event has fully resolved.
	PhaseAfter Phase = 2
)

func (p Phase) String() string {
	if p == PhaseAfter {
		return "AFTER"
	}
	return "ON"
}

// Producer builds follow-up actions from the owning entity and the matched
// event payload.
type Producer func(self Entity, payload ...any) []Action

// Followup is one entry of a registration's follow-up list: an Action (or
// Evaluator) reused verbatim, or a Producer invoked with the event payload.
type Followup any

// Registration attaches reactive effects to an entity. The pattern is an
// Action instance used purely as a structural and positional-argument
// matcher. A registration only fires while its owner occupies the
// registration's zone; single-fire registrations are removed after firing.
type Registration struct {
	ID        string
	Pattern   Action
	Followups []Followup
	Phase     Phase
	Zone      selector.Zone
	Once      bool
}

func newRegistration(pattern Action, followups []Followup, phase Phase, zone selector.Zone, once bool) *Registration {
	return &Registration{
		ID:        uuid.NewString(),
		Pattern:   pattern,
		Followups: followups,
		Phase:     phase,
		Zone:      zone,
		Once:      once,
	}
}

// InZone returns a copy of the registration filtered to another zone.
func (r *Registration) InZone(zone selector.Zone) *Registration {
	cp := *r
	cp.Zone = zone
	return &cp
}

// matches compares the pattern's declared arguments positionally against
// the event payload. Selector arguments are evaluated against the payload
// entity as a singleton candidate set; entity arguments require identity;
// zero ints and nils are wildcards.
func matches(pattern Action, self Entity, payload []any) bool {
	args := pattern.matchArgs()
	n := len(args)
	if len(payload) < n {
		n = len(payload)
	}
	for i := 0; i < n; i++ {
		if !argMatches(args[i], payload[i], self) {
			return false
		}
	}
	return true
}

func argMatches(pat, got any, self Entity) bool {
	switch p := pat.(type) {
	case nil:
		return true
	case Entity:
		return got == Entity(p)
	case evaler:
		e, ok := got.(Entity)
		if !ok {
			return false
		}
		res := p.Eval([]Entity{e}, selector.Context{Source: self})
		return len(res) == 1 && res[0] == e
	case int:
		if p == 0 {
			return true
		}
		v, ok := got.(int)
		return ok && v == p
	default:
		return true
	}
}

// QueuedAction pairs a produced effect with the entity whose registration
// produced it.
type QueuedAction struct {
	Owner  Entity
	Action Action
}

// followupActions expands one follow-up entry against the event payload.
func followupActions(owner Entity, fu Followup, payload []any) []Action {
	switch f := fu.(type) {
	case Producer:
		return f(owner, payload...)
	case func(self Entity, payload ...any) []Action:
		return f(owner, payload...)
	case Action:
		return []Action{f}
	default:
		return nil
	}
}

type matchedRegistration struct {
	owner Listener
	reg   *Registration
}

// scan walks every entity's registrations and returns those matching the
// event. Removal of single-fire registrations is deferred to the caller so
// the registration lists are never mutated mid-scan.
func (b *base) scan(g Game, phase Phase, payload []any) []matchedRegistration {
	var matched []matchedRegistration
	for _, e := range g.Entities() {
		l, ok := e.(Listener)
		if !ok || l.IgnoreEvents() {
			continue
		}
		for _, reg := range l.Registrations() {
			if reg.Zone != e.Zone() || reg.Phase != phase {
				continue
			}
			if reg.Pattern.ActionType() != b.typ {
				continue
			}
			if !matches(reg.Pattern, e, payload) {
				continue
			}
			matched = append(matched, matchedRegistration{owner: l, reg: reg})
		}
	}
	return matched
}

func removeFired(matched []matchedRegistration) {
	for _, m := range matched {
		if m.reg.Once {
			m.owner.RemoveRegistration(m.reg)
		}
	}
}

// broadcast notifies matching registrations immediately: each match's
// follow-ups are expanded and handed to the external queue right away.
func (b *base) broadcast(g Game, phase Phase, payload ...any) {
	matched := b.scan(g, phase, payload)
	for _, m := range matched {
		var actions []Action
		for _, fu := range m.reg.Followups {
			actions = append(actions, followupActions(m.owner, fu, payload)...)
		}
		g.QueueActions(m.owner, actions)
	}
	removeFired(matched)
}

// gather collects the effects matching registrations would produce without
// executing or queuing them, sorted ascending by each effect's sequence
// stamp. This is what makes simultaneous reactions (several triggers
// answering one death) resolve in the deterministic order their producing
// effects were created.
func (b *base) gather(g Game, phase Phase, payload ...any) []QueuedAction {
	matched := b.scan(g, phase, payload)
	var out []QueuedAction
	for _, m := range matched {
		for _, fu := range m.reg.Followups {
			for _, a := range followupActions(m.owner, fu, payload) {
				out = append(out, QueuedAction{Owner: m.owner, Action: a})
			}
		}
	}
	removeFired(matched)
	sortBySequence(out)
	return out
}

func sortBySequence(queued []QueuedAction) {
	sort.Slice(queued, func(i, j int) bool {
		return queued[i].Action.Sequence() < queued[j].Action.Sequence()
	})
}
