package args

import (
	"errors"
	"sync/atomic"
)

// ErrPendingReused is the panic value of a second Pending.Run.
var ErrPendingReused = errors.New("args: pending invocation already run")

// Strategy runs the work of a matched handler. It may run it inline and
// return its error, or schedule it and return nil; either way the work must
// run at most once.
type Strategy interface {
	Execute(work func() error) error
}

// StrategyFunc adapts a function to Strategy.
type StrategyFunc func(work func() error) error

func (f StrategyFunc) Execute(work func() error) error { return f(work) }

// Inline runs work on the calling goroutine.
var Inline Strategy = StrategyFunc(func(work func() error) error {
	return work()
})

// Pending is a leaf that matched, together with its parsed values, waiting
// to be handed to a Strategy.
type Pending[E any] struct {
	leaf   *Leaf[E]
	values []any
	begun  atomic.Bool
}

func newPending[E any](leaf *Leaf[E], values []any) *Pending[E] {
	return &Pending[E]{leaf: leaf, values: values}
}

// Values returns the parsed arguments in declaration order.
func (p *Pending[E]) Values() []any { return p.values }

// Run binds env to the handler and passes it to s. It may be called once.
func (p *Pending[E]) Run(env E, s Strategy) error {
	if !p.begun.CompareAndSwap(false, true) {
		panic(ErrPendingReused)
	}
	leaf, values := p.leaf, p.values
	return s.Execute(func() error {
		return leaf.invoke(env, values)
	})
}
