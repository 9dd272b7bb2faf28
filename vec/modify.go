package vec

import (
	"github.com/pkg/errors"

	"github.com/wilhasse/rawvec/ut"
)

// EmplaceBack constructs an element with ctor at the end and returns a
// reference to it.
//
// When storage is full it grows to max(1, 2*Cap). The new element is built
// in its final slot of the new storage before anything else moves, so if
// ctor fails the vector is unchanged and the new storage is dropped.
func (v *Vector[T]) EmplaceBack(ctor func() (T, error)) (*T, error) {
	pos, err := v.Emplace(v.count, ctor)
	if err != nil {
		return nil, err
	}
	return v.buf.Slot(pos), nil
}

// PushBack appends x, taking ownership of it.
func (v *Vector[T]) PushBack(x T) error {
	_, err := v.Emplace(v.count, func() (T, error) { return x, nil })
	return err
}

// PushBackCopy appends a copy of *src made with the Copy hook. src may point
// into v.
func (v *Vector[T]) PushBackCopy(src *T) error {
	_, err := v.Emplace(v.count, func() (T, error) { return v.traits.copyOf(src) })
	return err
}

// PopBack destroys the last element.
func (v *Vector[T]) PopBack() {
	ut.Assert(v.count > 0, "PopBack on empty vector")
	v.traits.destroy(v.buf.Slot(v.count - 1))
	v.count--
}

// Insert places x before position pos, taking ownership of it, and returns
// the position of the inserted element.
func (v *Vector[T]) Insert(pos int, x T) (int, error) {
	return v.Emplace(pos, func() (T, error) { return x, nil })
}

// InsertCopy places a copy of *src before position pos. src may point into v.
func (v *Vector[T]) InsertCopy(pos int, src *T) (int, error) {
	return v.Emplace(pos, func() (T, error) { return v.traits.copyOf(src) })
}

// Emplace constructs an element with ctor before position pos, which must be
// in [0, Len]. It returns pos, where the new element now lives.
//
// Without spare capacity, new storage is acquired, the element is built at
// pos and the prefix and suffix are relocated around it. With spare capacity
// the element is built first as a temporary; only then is the tail shifted
// one slot right and the temporary moved into the gap. Either way a failed
// ctor leaves the vector unchanged.
func (v *Vector[T]) Emplace(pos int, ctor func() (T, error)) (int, error) {
	ut.Assertf(pos >= 0 && pos <= v.count, "insert position %d in [0, %d]", pos, v.count)

	if v.count == v.buf.Cap() {
		n, err := v.grownCap()
		if err != nil {
			return pos, err
		}
		nb, err := acquire[T](n)
		if err != nil {
			return pos, err
		}
		x, err := ctor()
		if err != nil {
			nb.Release()
			return pos, errors.Wrapf(err, "construct element at %d", pos)
		}
		*nb.Slot(pos) = x
		old := v.live()
		relocate(nb.Slots(0, pos), old[:pos])
		relocate(nb.Slots(pos+1, v.count+1), old[pos:])
		v.replace(nb)
		v.count++
		return pos, nil
	}

	x, err := ctor()
	if err != nil {
		return pos, errors.Wrapf(err, "construct element at %d", pos)
	}
	s := v.buf.Slots(0, v.count+1)
	if pos < v.count {
		// Relocate the last element into the free end slot, then shift
		// [pos, count-1) right starting from the back.
		s[v.count] = s[v.count-1]
		for i := v.count - 1; i > pos; i-- {
			s[i] = s[i-1]
		}
	}
	s[pos] = x
	v.count++
	return pos, nil
}

// Erase destroys the element at pos, which must be in [0, Len), and shifts
// its successors one slot left. It returns pos, which now holds the old next
// element, or equals Len when the last element was erased.
func (v *Vector[T]) Erase(pos int) int {
	ut.Assertf(pos >= 0 && pos < v.count, "erase position %d in [0, %d)", pos, v.count)
	s := v.live()
	v.traits.destroy(&s[pos])
	copy(s[pos:], s[pos+1:])
	var zero T
	s[len(s)-1] = zero
	v.count--
	return pos
}
