// Package optional holds the traverse-or-absent helpers used wherever a lookup
// walks through several possibly-missing links. A nil pointer is "absent"; any
// absent step collapses the whole chain to absent.
package optional

// Map applies f to v when v is present and returns nil otherwise.
func Map[A, B any](v *A, f func(*A) *B) *B {
	if v == nil {
		return nil
	}
	return f(v)
}

// OrElse dereferences v, or returns fallback when v is absent.
func OrElse[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

// Get dereferences v and reports whether it was present.
func Get[T any](v *T) (T, bool) {
	if v == nil {
		var zero T
		return zero, false
	}
	return *v, true
}

// Present reports whether v holds a value.
func Present[T any](v *T) bool {
	return v != nil
}

// Of returns a pointer to a copy of v.
func Of[T any](v T) *T {
	return &v
}
