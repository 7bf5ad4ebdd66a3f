package selector

// adjacentTransform expands each member of the filtered collection to its
// board neighbors.
type adjacentTransform struct{}

func (adjacentTransform) Merge(ctx Context, entities []Entity) []Entity {
	var out []Entity
	for _, e := range entities {
		out = append(out, e.Adjacent()...)
	}
	return out
}

// Adjacent selects the minions adjacent to the matches of base.
func Adjacent(base Selector) Selector {
	return MergeOf(base, adjacentTransform{})
}

// sampleTransform draws a random sample without replacement from the
// filtered collection. When the collection is empty the optional fallback
// entity is returned instead.
type sampleTransform struct {
	count    int
	fallback Entity
}

func (t sampleTransform) Merge(ctx Context, entities []Entity) []Entity {
	if len(entities) == 0 {
		if t.fallback != nil {
			return []Entity{t.fallback}
		}
		return nil
	}
	n := t.count
	if n > len(entities) {
		n = len(entities)
	}
	out := make([]Entity, 0, n)
	for _, i := range ctx.Rand.Perm(len(entities))[:n] {
		out = append(out, entities[i])
	}
	return out
}

// RandomSelector samples its base selector's matches. It is a Selector with
// two extra knobs: Times scales the sample size and Fallback supplies a
// constant result for an empty pool.
type RandomSelector struct {
	Selector
	base     Selector
	count    int
	fallback Entity
}

// Random selects a 1-member random sample of base's matches.
func Random(base Selector) RandomSelector {
	return makeRandom(base, 1, nil)
}

func makeRandom(base Selector, count int, fallback Entity) RandomSelector {
	return RandomSelector{
		Selector: MergeOf(base, sampleTransform{count: count, fallback: fallback}),
		base:     base,
		count:    count,
		fallback: fallback,
	}
}

// Times scales the sample size multiplicatively. Requesting the same random
// selector n times draws one sample of size count*n rather than evaluating
// the base selector n times.
func (r RandomSelector) Times(n int) RandomSelector {
	return makeRandom(r.base, r.count*n, r.fallback)
}

// Fallback sets the constant returned when the filtered pool is empty.
func (r RandomSelector) Fallback(e Entity) RandomSelector {
	return makeRandom(r.base, r.count, e)
}
