package vec

import "github.com/pkg/errors"

// Traits describes how a Vector constructs, copies and destroys its
// elements. A nil hook selects plain Go value semantics for that step.
//
// Relocation is not a hook: moving an element to another slot is a bitwise
// transfer that ends the source slot's lifetime without calling Destroy, and
// it cannot fail.
type Traits[T any] struct {
	// Default constructs a fresh element. nil yields the zero value.
	Default func() (T, error)
	// Copy constructs an independent copy of *src. nil copies by assignment.
	Copy func(src *T) (T, error)
	// Destroy ends the lifetime of a live element. It is called exactly once
	// for every element that is erased, overwritten, popped, truncated or
	// freed.
	Destroy func(*T)
}

// Option configures a Vector at construction.
type Option[T any] func(*Vector[T])

// WithTraits sets the element lifecycle hooks.
func WithTraits[T any](t Traits[T]) Option[T] {
	return func(v *Vector[T]) {
		v.traits = t
	}
}

func (t *Traits[T]) newElement() (T, error) {
	if t.Default == nil {
		var zero T
		return zero, nil
	}
	return t.Default()
}

func (t *Traits[T]) copyOf(src *T) (T, error) {
	if t.Copy == nil {
		return *src, nil
	}
	return t.Copy(src)
}

func (t *Traits[T]) destroy(p *T) {
	if t.Destroy != nil {
		t.Destroy(p)
	}
	var zero T
	*p = zero
}

func (t *Traits[T]) destroyN(s []T) {
	for i := range s {
		t.destroy(&s[i])
	}
}

// assign copy-assigns *src over the live element *dst. The copy is built
// before the old value is destroyed, so a failure leaves *dst as it was.
func (t *Traits[T]) assign(dst, src *T) error {
	v, err := t.copyOf(src)
	if err != nil {
		return err
	}
	t.destroy(dst)
	*dst = v
	return nil
}

// constructN default-constructs every slot of dst in order. On failure the
// elements already built are destroyed before the error is returned.
func (t *Traits[T]) constructN(dst []T, base int) error {
	for i := range dst {
		v, err := t.newElement()
		if err != nil {
			t.destroyN(dst[:i])
			return errors.Wrapf(err, "construct element %d", base+i)
		}
		dst[i] = v
	}
	return nil
}

// copyN copy-constructs src into the uninitialized slots of dst, with the
// same rollback as constructN.
func (t *Traits[T]) copyN(dst, src []T, base int) error {
	for i := range src {
		v, err := t.copyOf(&src[i])
		if err != nil {
			t.destroyN(dst[:i])
			return errors.Wrapf(err, "copy element %d", base+i)
		}
		dst[i] = v
	}
	return nil
}

// relocate moves src into the distinct slots of dst and resets the source
// slots. No hook runs: the elements simply live somewhere else now.
func relocate[T any](dst, src []T) {
	copy(dst, src)
	clear(src)
}
