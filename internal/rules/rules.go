// Package rules resolves ordered predicate tables.
package rules

// Rule pairs a predicate with the value it yields when the predicate holds.
type Rule[In, Out any] struct {
	Name string
	When func(In) bool
	Then func(In) Out
}

// FirstMatch returns the result of the first rule whose predicate holds,
// or fallback(in) when none does. Rules are evaluated in slice order.
func FirstMatch[In, Out any](rules []Rule[In, Out], in In, fallback func(In) Out) Out {
	for _, r := range rules {
		if r.When(in) {
			return r.Then(in)
		}
	}
	return fallback(in)
}

// AllMatches returns the results of every rule whose predicate holds, in slice order.
func AllMatches[In, Out any](rules []Rule[In, Out], in In) []Out {
	var out []Out
	for _, r := range rules {
		if r.When(in) {
			out = append(out, r.Then(in))
		}
	}
	return out
}

// Const is a Then helper for rules that yield a fixed value.
func Const[In, Out any](v Out) func(In) Out {
	return func(In) Out { return v }
}
