package vec

import "iter"

// Begin returns the position of the first element.
func (v *Vector[T]) Begin() int {
	return 0
}

// End returns the one-past-last position, equal to Len.
func (v *Vector[T]) End() int {
	return v.count
}

// All yields positions and elements in order. Mutating v during iteration
// is not supported.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.live() {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Values yields elements in order.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.live() {
			if !yield(x) {
				return
			}
		}
	}
}
