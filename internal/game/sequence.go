package game

import "sync/atomic"

// sequence is the process-wide effect counter. Every Action and Evaluator
// instance is stamped at construction; stamps are unique, strictly
// increasing, and never reused. This is the engine's sole ordering
// primitive: simultaneously-produced effects are queued in stamp order.
var sequence atomic.Uint64

func nextSequence() uint64 {
	return sequence.Add(1)
}
