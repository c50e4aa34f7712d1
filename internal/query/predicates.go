package query

import "strings"

// Contains matches records where any of fields contains term, ignoring case.
// An empty term disables the predicate.
func Contains[T any](term string, fields ...func(T) string) Predicate[T] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || len(fields) == 0 {
		return nil
	}
	return func(item T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(item)), term) {
				return true
			}
		}
		return false
	}
}

// Equals matches a categorical field exactly. Empty or "all" disables it.
func Equals[T any](want string, field func(T) string) Predicate[T] {
	want = strings.TrimSpace(want)
	if want == "" || strings.EqualFold(want, "all") {
		return nil
	}
	return func(item T) bool {
		return field(item) == want
	}
}

// Range bounds a numeric field inclusively. Nil bounds are open.
type Range struct {
	Min *float64
	Max *float64
}

func (r Range) Active() bool {
	return r.Min != nil || r.Max != nil
}

func InRange[T any](r Range, field func(T) float64) Predicate[T] {
	if !r.Active() {
		return nil
	}
	return func(item T) bool {
		v := field(item)
		if r.Min != nil && v < *r.Min {
			return false
		}
		if r.Max != nil && v > *r.Max {
			return false
		}
		return true
	}
}
