package common

// ValueOr dereferences p, returning def when p is nil.
func ValueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// At returns the element at index i, or nil when the slice is too short.
// Provider series are parallel arrays that are not guaranteed to share a length.
func At[T any](s []*T, i int) *T {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}
