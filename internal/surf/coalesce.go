package surf

// Coalesce returns the first non-nil candidate, or nil when every candidate is absent.
// It never interpolates or averages: the first available value wins.
func Coalesce[T any](candidates ...*T) *T {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}

// Float returns a pointer to v. Handy for building optional inputs.
func Float(v float64) *float64 {
	return &v
}

// ValueOr dereferences p, falling back to def when p is nil.
func ValueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
