package vec

import (
	"math"

	"github.com/pkg/errors"

	"github.com/wilhasse/rawvec/mem"
	"github.com/wilhasse/rawvec/ut"
)

// grownCap applies the growth policy: one slot for empty storage, double otherwise.
func (v *Vector[T]) grownCap() (int, error) {
	c := v.buf.Cap()
	if c == 0 {
		return 1, nil
	}
	if c > math.MaxInt/2 {
		return 0, mem.ErrOverflow
	}
	return c * 2, nil
}

func acquire[T any](n int) (*mem.RawBuffer[T], error) {
	buf, err := mem.Acquire[T](n)
	if err != nil {
		return nil, errors.Wrapf(err, "acquire %d slots", n)
	}
	return buf, nil
}

// replace installs nb as the storage and releases the old buffer. The old
// slots must no longer hold live elements.
func (v *Vector[T]) replace(nb *mem.RawBuffer[T]) {
	from := v.buf.Cap()
	v.buf.Swap(nb)
	nb.Release()
	logReallocation(from, v.buf.Cap(), v.buf.Bytes())
}

// Reserve ensures capacity for at least n elements. Existing elements are
// relocated into new storage when it grows; nothing changes if n <= Cap.
func (v *Vector[T]) Reserve(n int) error {
	if n <= v.buf.Cap() {
		return nil
	}
	nb, err := acquire[T](n)
	if err != nil {
		return err
	}
	relocate(nb.Slots(0, v.count), v.live())
	v.replace(nb)
	return nil
}

// Resize sets the length to n. Shrinking destroys the trailing elements and
// keeps capacity. Growing default-constructs the new elements; when storage
// must grow it grows to exactly n, and the new elements are built before the
// existing ones move, so a failed construction leaves length and capacity
// unchanged.
func (v *Vector[T]) Resize(n int) error {
	ut.Assertf(n >= 0, "size %d >= 0", n)
	switch {
	case n <= v.count:
		v.traits.destroyN(v.buf.Slots(n, v.count))
	case n <= v.buf.Cap():
		if err := v.traits.constructN(v.buf.Slots(v.count, n), v.count); err != nil {
			return err
		}
	default:
		nb, err := acquire[T](n)
		if err != nil {
			return err
		}
		if err := v.traits.constructN(nb.Slots(v.count, n), v.count); err != nil {
			nb.Release()
			return err
		}
		relocate(nb.Slots(0, v.count), v.live())
		v.replace(nb)
	}
	v.count = n
	return nil
}

// ShrinkToFit reallocates storage to exactly Len slots.
func (v *Vector[T]) ShrinkToFit() error {
	if v.count == v.buf.Cap() {
		return nil
	}
	nb, err := acquire[T](v.count)
	if err != nil {
		return err
	}
	relocate(nb.Slots(0, v.count), v.live())
	v.replace(nb)
	return nil
}

// Clear destroys every element and keeps the storage.
func (v *Vector[T]) Clear() {
	v.traits.destroyN(v.live())
	v.count = 0
}
