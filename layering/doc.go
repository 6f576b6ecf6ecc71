// Package layering holds the precedence primitives used to resolve one
// externally visible value from several ordered sources.
//
// A Chain orders sources strongest first. Resolve walks the chain and returns
// the first present value together with the view every source had of it, so
// callers can explain where a value came from.
package layering
