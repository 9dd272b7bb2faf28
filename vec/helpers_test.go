package vec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wilhasse/rawvec/mem"
)

var errBoom = errors.New("boom")

type elem struct {
	v  int
	ok bool
}

// lifecycle counts element lifetimes and can fail the n-th construction.
type lifecycle struct {
	live       int
	constructs int
	failAt     int
	badDestroy int
}

func (l *lifecycle) make(v int) (elem, error) {
	l.constructs++
	if l.failAt != 0 && l.constructs == l.failAt {
		return elem{}, errBoom
	}
	l.live++
	return elem{v: v, ok: true}, nil
}

// failNext makes the construction after n more successful ones fail.
func (l *lifecycle) failNext(n int) {
	l.failAt = l.constructs + n + 1
}

func (l *lifecycle) ctor(v int) func() (elem, error) {
	return func() (elem, error) { return l.make(v) }
}

func (l *lifecycle) traits() Traits[elem] {
	return Traits[elem]{
		Default: func() (elem, error) { return l.make(0) },
		Copy:    func(src *elem) (elem, error) { return l.make(src.v) },
		Destroy: func(e *elem) {
			if !e.ok {
				l.badDestroy++
				return
			}
			l.live--
		},
	}
}

func newTracked(t *testing.T, l *lifecycle, vals ...int) *Vector[elem] {
	t.Helper()
	v := New(WithTraits(l.traits()))
	for _, x := range vals {
		_, err := v.EmplaceBack(l.ctor(x))
		require.NoError(t, err)
	}
	return v
}

func values(v *Vector[elem]) []int {
	out := make([]int, 0, v.Len())
	for e := range v.Values() {
		out = append(out, e.v)
	}
	return out
}

func ints(v *Vector[int]) []int {
	return append([]int(nil), v.Slice()...)
}

func fromInts(t *testing.T, vals ...int) *Vector[int] {
	t.Helper()
	v := New[int]()
	for _, x := range vals {
		require.NoError(t, v.PushBack(x))
	}
	return v
}

func withLimit(t *testing.T, limit int64) *mem.LimitAllocator {
	t.Helper()
	a := mem.NewLimitAllocator(limit, nil, nil)
	prev := mem.DefaultAllocator
	mem.DefaultAllocator = a
	t.Cleanup(func() { mem.DefaultAllocator = prev })
	return a
}
