// Package selector implements the entity-query interpreter used by game
// effects to pick their targets. A Selector is an immutable, flat program
// of opcodes: atomic predicates, postfix boolean combinators, and bracketed
// merge segments whose filtered input is handed whole to an aggregate
// transform (adjacency expansion, random sampling).
package selector

import (
	"math/rand"
	"strings"
)

// Predicate is an atomic membership test. Predicates must be free of side
// effects: the interpreter always evaluates both operands of a binary
// combinator, there is no short-circuiting.
type Predicate func(e, source Entity) bool

// Transform rewrites a whole filtered collection inside a merge segment.
type Transform interface {
	Merge(ctx Context, entities []Entity) []Entity
}

// Context carries the evaluation environment. Rand is the shared seedable
// source every sampling transform draws from; a fixed seed reproduces a run.
type Context struct {
	Source Entity
	Rand   *rand.Rand
}

type opcode uint8

const (
	opTest opcode = iota
	opAnd
	opOr
	opNot
	opMergeFilter
	opMerge
	opUnmerge
)

type instruction struct {
	code      opcode
	test      Predicate
	transform Transform
	label     string
}

// Selector is an immutable opcode program evaluated against an entity
// collection. Combining selectors copies programs, never mutates them.
type Selector struct {
	program []instruction
}

// Match builds a single-predicate selector. The label only serves String.
func Match(label string, p Predicate) Selector {
	return Selector{program: []instruction{{code: opTest, test: p, label: label}}}
}

func concat(parts ...[]instruction) []instruction {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]instruction, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// OrOf is set union: an entity matches when it matches any operand.
func OrOf(sels ...Selector) Selector {
	return fold(opOr, sels)
}

// AndOf is set intersection: an entity matches when it matches every operand.
func AndOf(sels ...Selector) Selector {
	return fold(opAnd, sels)
}

func fold(code opcode, sels []Selector) Selector {
	if len(sels) == 0 {
		return Selector{}
	}
	prog := concat(sels[0].program)
	for _, s := range sels[1:] {
		prog = concat(prog, s.program, []instruction{{code: code}})
	}
	return Selector{program: prog}
}

// DifferenceOf is set difference: entities matching a with every match of
// the remaining operands removed. Compiled as and-not.
func DifferenceOf(a Selector, rest ...Selector) Selector {
	prog := concat(a.program)
	for _, s := range rest {
		prog = concat(prog, s.program, []instruction{{code: opNot}, {code: opAnd}})
	}
	return Selector{program: prog}
}

// MergeOf brackets a merge segment: the filter sub-program selects from the
// original input collection, and the whole filtered collection is fed
// through the transforms in order.
func MergeOf(filter Selector, transforms ...Transform) Selector {
	prog := concat([]instruction{{code: opMergeFilter}}, filter.program, []instruction{{code: opMerge}})
	for _, t := range transforms {
		prog = append(prog, instruction{code: opTest, transform: t})
	}
	prog = append(prog, instruction{code: opUnmerge})
	return Selector{program: prog}
}

// Eval runs the program over the input collection and returns the matches.
// An empty input returns empty immediately; no predicate runs. Plain
// segments are evaluated per entity as a postfix boolean expression; merge
// segments each re-filter from the original input, never from a prior
// segment's output.
func (s Selector) Eval(entities []Entity, ctx Context) []Entity {
	if len(entities) == 0 || len(s.program) == 0 {
		return nil
	}
	var result []Entity
	pc := 0
	for pc < len(s.program) {
		if s.program[pc].code != opMergeFilter {
			survivors, next := s.filter(entities, ctx, pc)
			result = append(result, survivors...)
			pc = next
			continue
		}
		result, pc = s.evalMerge(result, entities, ctx, pc)
	}
	return result
}

// Test reports whether a single entity matches. Only meaningful for
// programs without merge segments.
func (s Selector) Test(e, source Entity) bool {
	ok, _ := s.testAt(e, source, 0)
	return ok
}

// filter evaluates one plain segment starting at pc against every entity
// independently. Returns the survivors and the index of the instruction
// that ended the segment (a merge marker or len(program)).
func (s Selector) filter(entities []Entity, ctx Context, pc int) ([]Entity, int) {
	var survivors []Entity
	end := pc
	for _, e := range entities {
		ok, next := s.testAt(e, ctx.Source, pc)
		end = next
		if ok {
			survivors = append(survivors, e)
		}
	}
	return survivors, end
}

// testAt evaluates the postfix boolean expression starting at pc for one
// entity. Both operands of and/or are always evaluated.
func (s Selector) testAt(e, source Entity, pc int) (bool, int) {
	var stack []bool
	for pc < len(s.program) {
		in := s.program[pc]
		if in.code == opMergeFilter || in.code == opMerge {
			break
		}
		pc++
		switch in.code {
		case opTest:
			stack = append(stack, in.test(e, source))
		case opNot:
			stack[len(stack)-1] = !stack[len(stack)-1]
		case opAnd:
			a, b := stack[len(stack)-1], stack[len(stack)-2]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = a && b
		case opOr:
			a, b := stack[len(stack)-1], stack[len(stack)-2]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = a || b
		}
	}
	if len(stack) == 0 {
		return false, pc
	}
	return stack[len(stack)-1], pc
}

// evalMerge evaluates one merge segment (program[pc] is the merge-filter
// marker) and combines its output into result via the trailing combinator
// opcodes. With no trailing combinator the output is unioned.
func (s Selector) evalMerge(result, entities []Entity, ctx Context, pc int) ([]Entity, int) {
	pc++ // past merge-filter marker
	merged, pc := s.filter(entities, ctx, pc)
	pc++ // past merge marker
	for pc < len(s.program) && s.program[pc].code != opUnmerge {
		merged = s.program[pc].transform.Merge(ctx, merged)
		pc++
	}
	pc++ // past unmerge marker

	negated := false
	combined := false
loop:
	for pc < len(s.program) {
		switch s.program[pc].code {
		case opOr:
			result = append(result, merged...)
			combined = true
		case opAnd:
			kept := result[:0:0]
			for _, e := range result {
				if containsEntity(merged, e) != negated {
					kept = append(kept, e)
				}
			}
			result = kept
			combined = true
		case opNot:
			negated = !negated
		default:
			break loop
		}
		pc++
	}
	if !combined {
		result = append(result, merged...)
	}
	return result, pc
}

func containsEntity(entities []Entity, e Entity) bool {
	for _, x := range entities {
		if x == e {
			return true
		}
	}
	return false
}

func (s Selector) String() string {
	parts := make([]string, 0, len(s.program))
	for _, in := range s.program {
		switch in.code {
		case opTest:
			if in.label != "" {
				parts = append(parts, in.label)
			} else {
				parts = append(parts, "merge-op")
			}
		case opAnd:
			parts = append(parts, "and")
		case opOr:
			parts = append(parts, "or")
		case opNot:
			parts = append(parts, "not")
		case opMergeFilter:
			parts = append(parts, "merge-filter")
		case opMerge:
			parts = append(parts, "merge")
		case opUnmerge:
			parts = append(parts, "unmerge")
		}
	}
	return strings.Join(parts, " ")
}
