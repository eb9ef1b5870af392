// Package model holds closed-form event-rate density models: cosmic star
// formation histories converted to core-collapse rates, long GRB rate
// histories and luminosity functions.
//
// Every model is an immutable value. At evaluates it at a single point of
// its independent variable (redshift z or log10 luminosity); Eval maps it
// over a slice. Nothing here validates the domain of the input: out-of-range
// values propagate as NaN or Inf.
package model

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// ErrInvalidArgument is wrapped by every construction error in this package.
var ErrInvalidArgument = errors.New("invalid argument")

type Model interface {
	At(x float64) float64
}

// Variable is the independent variable a model is defined over.
type Variable int

const (
	Redshift Variable = iota
	LogLuminosity
)

func (v Variable) String() string {
	switch v {
	case Redshift:
		return "z"
	case LogLuminosity:
		return "logL"
	}
	return "unknown"
}

// Eval returns m.At(xs[i]) for each i. The result has the same length and
// element type as xs.
func Eval[S ~[]E, E constraints.Float](m Model, xs S) S {
	out := make(S, len(xs))
	for i := range xs {
		out[i] = E(m.At(float64(xs[i])))
	}
	return out
}

// Float returns a pointer to v, for the optional parameters of BExp and S12.
func Float(v float64) *float64 {
	return &v
}
