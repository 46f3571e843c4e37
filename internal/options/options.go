// Package options implements the named functional options shared by the
// parser and the snapshot encoder.
package options

import (
	"fmt"

	"github.com/arloliu/rifx/errs"
)

// Option configures a value of type T.
type Option[T any] interface {
	// Name is the exported constructor the option came from, e.g. "WithLogger".
	Name() string
	apply(T) error
}

// Func is an Option backed by a function.
type Func[T any] struct {
	name      string
	applyFunc func(T) error
}

// Name returns the option name given to New or NoError.
func (f *Func[T]) Name() string {
	return f.name
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New returns an option named name that may reject its argument.
func New[T any](name string, fn func(T) error) *Func[T] {
	return &Func[T]{name: name, applyFunc: fn}
}

// NoError returns an option named name that always succeeds.
func NoError[T any](name string, fn func(T)) *Func[T] {
	return New(name, func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts in order and stops at the first rejected option. The
// returned error wraps errs.ErrInvalidOption and names the option; options
// applied before it stay applied. Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return fmt.Errorf("%w %s: %w", errs.ErrInvalidOption, opt.Name(), err)
		}
	}

	return nil
}
