// Package vec implements Vector, a contiguous growable sequence built on a
// mem.RawBuffer. Capacity and live length are tracked separately: slots past
// Len are reserved storage that holds no element.
//
// Every mutating operation either completes or returns an error with the
// vector exactly as it was before the call. Copy assignment into existing
// capacity is the exception: it stops at the first element whose copy fails,
// leaving the earlier positions already assigned.
//
// A Vector has a single owner and no internal locking.
package vec

import (
	"github.com/pkg/errors"

	"github.com/wilhasse/rawvec/mem"
	"github.com/wilhasse/rawvec/ut"
)

// Vector is a dynamic array of T. The zero value is an empty vector with
// plain value semantics for its elements.
type Vector[T any] struct {
	buf    mem.RawBuffer[T]
	count  int
	traits Traits[T]
}

// New returns an empty vector with no storage.
func New[T any](opts ...Option[T]) *Vector[T] {
	v := &Vector[T]{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// NewSized returns a vector holding n default-constructed elements with
// capacity exactly n. If any construction fails, the elements built so far
// are destroyed and the storage released before the error is returned.
func NewSized[T any](n int, opts ...Option[T]) (*Vector[T], error) {
	ut.Assertf(n >= 0, "size %d >= 0", n)
	v := New(opts...)
	buf, err := acquire[T](n)
	if err != nil {
		return nil, err
	}
	if err := v.traits.constructN(buf.Slots(0, n), 0); err != nil {
		buf.Release()
		return nil, err
	}
	v.buf.Swap(buf)
	v.count = n
	return v, nil
}

// Clone returns a deep copy of v with capacity equal to v.Len(). Each element
// is copied through the Copy hook; on failure nothing is left allocated.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	return v.copyOf(v)
}

// copyOf builds a new vector with v's traits holding copies of src's elements.
func (v *Vector[T]) copyOf(src *Vector[T]) (*Vector[T], error) {
	out := &Vector[T]{traits: v.traits}
	buf, err := acquire[T](src.count)
	if err != nil {
		return nil, err
	}
	if err := v.traits.copyN(buf.Slots(0, src.count), src.live(), 0); err != nil {
		buf.Release()
		return nil, err
	}
	out.buf.Swap(buf)
	out.count = src.count
	return out, nil
}

// Move transfers v's storage and elements to a new vector and leaves v
// empty. No element is copied.
func (v *Vector[T]) Move() *Vector[T] {
	out := &Vector[T]{traits: v.traits}
	out.Swap(v)
	return out
}

// Assign makes v hold copies of src's elements.
//
// When src does not fit in v's capacity a complete copy is built first and
// swapped in, so a failed copy leaves v untouched. Otherwise the overlapping
// prefix is copy-assigned element by element, then the surplus tail of v is
// destroyed or the extra elements of src are copy-constructed.
func (v *Vector[T]) Assign(src *Vector[T]) error {
	if v == src {
		return nil
	}
	if src.count > v.buf.Cap() {
		tmp, err := v.copyOf(src)
		if err != nil {
			return err
		}
		v.Swap(tmp)
		tmp.Free()
		return nil
	}

	dst := v.buf.Slots(0, v.buf.Cap())
	from := src.live()
	common := min(v.count, src.count)
	for i := 0; i < common; i++ {
		if err := v.traits.assign(&dst[i], &from[i]); err != nil {
			return errors.Wrapf(err, "assign element %d", i)
		}
	}
	if src.count < v.count {
		v.traits.destroyN(dst[src.count:v.count])
	} else if err := v.traits.copyN(dst[v.count:src.count], from[v.count:], v.count); err != nil {
		return err
	}
	v.count = src.count
	return nil
}

// MoveAssign destroys v's elements and takes over src's storage, elements and
// traits, leaving src empty. Assigning a vector to itself does nothing.
func (v *Vector[T]) MoveAssign(src *Vector[T]) {
	if v == src {
		return
	}
	v.Free()
	v.Swap(src)
}

// Swap exchanges storage, length and traits with other. The lifecycle hooks
// travel with the elements they built.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.buf.Swap(&other.buf)
	v.count, other.count = other.count, v.count
	v.traits, other.traits = other.traits, v.traits
}

// Free destroys every element in order and releases the storage. The vector
// remains usable and empty.
func (v *Vector[T]) Free() {
	v.traits.destroyN(v.live())
	v.count = 0
	v.buf.Release()
}

// Len returns the number of live elements.
func (v *Vector[T]) Len() int {
	return v.count
}

// Cap returns the number of slots in the current storage.
func (v *Vector[T]) Cap() int {
	return v.buf.Cap()
}

// At returns a reference to element i. The reference is invalidated by any
// operation that changes capacity, and by insert or erase at or before i.
func (v *Vector[T]) At(i int) *T {
	ut.Assertf(i >= 0 && i < v.count, "index %d < len %d", i, v.count)
	return v.buf.Slot(i)
}

// Get returns a copy of element i.
func (v *Vector[T]) Get(i int) T {
	return *v.At(i)
}

// Front returns a reference to the first element.
func (v *Vector[T]) Front() *T {
	return v.At(0)
}

// Back returns a reference to the last element.
func (v *Vector[T]) Back() *T {
	return v.At(v.count - 1)
}

// Slice returns the live elements as a slice sharing v's storage. Appending
// to it never touches v.
func (v *Vector[T]) Slice() []T {
	return v.live()
}

func (v *Vector[T]) live() []T {
	return v.buf.Slots(0, v.count)
}
