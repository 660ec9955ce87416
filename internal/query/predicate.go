package query

// Predicate is a boolean condition over a record, used by the in-memory
// stores where criteria cannot be pushed down to SQL.
type Predicate[T any] func(T) bool

// And combines predicates into a conjunction. With no predicates the result
// is vacuously true, mirroring an empty Criteria.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Filter returns the elements of items matching pred, in order. The input
// is never mutated.
func Filter[T any](items []T, pred Predicate[T]) []T {
	out := []T{}
	for _, v := range items {
		if pred(v) {
			out = append(out, v)
		}
	}
	return out
}
