package game

// Condition is a boolean test over live game state.
type Condition func(source Entity, g Game) bool

// Evaluator defers a conditional branch to execution time: the condition
// is checked against the state current when the evaluator resolves, after
// any effects queued ahead of it, and exactly one branch's effect list (or
// none) runs immediately. Evaluators are sequence-stamped and usable
// anywhere an Action is.
type Evaluator struct {
	base
	cond      Condition
	then      []Action
	otherwise []Action
}

// NewEvaluator wraps a condition. Use Then and Else to bind the branches.
func NewEvaluator(cond Condition) *Evaluator {
	e := &Evaluator{cond: cond}
	e.base = newBase(TypeEvaluator)
	return e
}

// Then binds the effects run when the condition holds.
func (e *Evaluator) Then(actions ...Action) *Evaluator {
	e.then = actions
	return e
}

// Else binds the effects run when the condition does not hold.
func (e *Evaluator) Else(actions ...Action) *Evaluator {
	e.otherwise = actions
	return e
}

func (e *Evaluator) Trigger(source Entity, g Game) ([][]Entity, error) {
	branch := e.otherwise
	if e.cond(source, g) {
		branch = e.then
	}
	for _, action := range branch {
		if _, err := action.Trigger(source, g); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// Dead evaluates to true when every entity matched by the selector is
// dead. An empty match set counts as true.
func Dead(sel any) *Evaluator {
	return NewEvaluator(func(source Entity, g Game) bool {
		targets, err := resolveEntities(sel, source, g)
		if err != nil {
			return false
		}
		for _, t := range targets {
			if !t.Dead() {
				return false
			}
		}
		return true
	})
}

// Find evaluates to true when the selector matches at least count
// entities.
func Find(sel any, count int) *Evaluator {
	return NewEvaluator(func(source Entity, g Game) bool {
		targets, err := resolveEntities(sel, source, g)
		if err != nil {
			return false
		}
		return len(targets) >= count
	})
}
