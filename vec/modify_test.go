package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/rawvec/mem"
	"github.com/wilhasse/rawvec/ut"
)

func TestPushBackKeepsOrder(t *testing.T) {
	v := New[int]()
	for i := 0; i < 100; i++ {
		require.NoError(t, v.PushBack(i))
		require.Equal(t, i+1, v.Len())
	}
	for i, x := range v.All() {
		require.Equal(t, i, x)
	}
}

func TestEmplaceBackReturnsReference(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1)

	p, err := v.EmplaceBack(l.ctor(2))
	require.NoError(t, err)
	assert.Equal(t, 2, p.v)
	p.v = 20
	assert.Equal(t, []int{1, 20}, values(v))
}

func TestEmplaceBackFailureWithGrowth(t *testing.T) {
	a := withLimit(t, 0)
	var l lifecycle
	v := newTracked(t, &l, 1, 2, 3, 4)
	require.Equal(t, 4, v.Cap())
	inUse := a.InUse()

	l.failNext(0)
	p, err := v.EmplaceBack(l.ctor(5))
	require.ErrorIs(t, err, errBoom)
	assert.Nil(t, p)
	assert.Equal(t, []int{1, 2, 3, 4}, values(v))
	assert.Equal(t, 4, v.Cap())
	assert.Equal(t, 4, l.live)
	assert.Equal(t, inUse, a.InUse())
}

func TestEmplaceBackFailureInPlace(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1, 2, 3)
	l.failNext(0)

	_, err := v.EmplaceBack(l.ctor(4))
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{1, 2, 3}, values(v))
	assert.Equal(t, 4, v.Cap())
}

func TestPushBackAllocationFailure(t *testing.T) {
	withLimit(t, 24)
	v := fromInts(t, 1, 2)

	require.ErrorIs(t, v.PushBack(3), mem.ErrOutOfMemory)
	assert.Equal(t, []int{1, 2}, ints(v))
	assert.Equal(t, 2, v.Cap())
}

func TestPushBackCopyOfOwnElement(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1, 2)
	require.Equal(t, v.Len(), v.Cap())

	require.NoError(t, v.PushBackCopy(v.At(0)))
	require.NoError(t, v.PushBackCopy(v.At(1)))
	assert.Equal(t, []int{1, 2, 1, 2}, values(v))
	assert.Equal(t, 4, l.live)
}

func TestPopBack(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1, 2, 3)
	v.PopBack()
	assert.Equal(t, []int{1, 2}, values(v))
	assert.Equal(t, 2, l.live)
	assert.Equal(t, 4, v.Cap())
}

func TestInsertAtFront(t *testing.T) {
	v := fromInts(t, 1, 2, 3)
	pos, err := v.Insert(0, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
	assert.Equal(t, []int{9, 1, 2, 3}, ints(v))
	assert.Equal(t, 4, v.Len())
}

func TestInsertAtEndMatchesPushBack(t *testing.T) {
	a := fromInts(t, 1, 2, 3)
	b := fromInts(t, 1, 2, 3)

	pos, err := a.Insert(a.End(), 4)
	require.NoError(t, err)
	assert.Equal(t, 3, pos)
	require.NoError(t, b.PushBack(4))
	assert.Equal(t, ints(b), ints(a))
	assert.Equal(t, b.Cap(), a.Cap())
}

func TestInsertWithGrowth(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1, 2, 3, 4)
	require.Equal(t, 4, v.Cap())

	pos, err := v.Emplace(2, l.ctor(9))
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
	assert.Equal(t, []int{1, 2, 9, 3, 4}, values(v))
	assert.Equal(t, 8, v.Cap())
	assert.Equal(t, 5, l.live)
	assert.Equal(t, 9, v.Get(pos).v)
}

func TestInsertInPlaceMiddle(t *testing.T) {
	v := fromInts(t, 1, 2, 3)
	require.Equal(t, 4, v.Cap())

	pos, err := v.Insert(1, 9)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Equal(t, []int{1, 9, 2, 3}, ints(v))
	assert.Equal(t, 4, v.Cap())
}

func TestInsertIntoEmpty(t *testing.T) {
	v := New[int]()
	pos, err := v.Insert(0, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)
	assert.Equal(t, []int{5}, ints(v))
	assert.Equal(t, 1, v.Cap())
}

func TestInsertFailureWithGrowth(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1, 2)
	require.Equal(t, 2, v.Cap())

	l.failNext(0)
	_, err := v.Emplace(1, l.ctor(9))
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "construct element at 1")
	assert.Equal(t, []int{1, 2}, values(v))
	assert.Equal(t, 2, v.Cap())
	assert.Equal(t, 2, l.live)
}

// The temporary is built before anything shifts, so a failed construction on
// the in-place path leaves every element where it was.
func TestInsertFailureInPlace(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1, 2, 3)
	require.Equal(t, 4, v.Cap())

	l.failNext(0)
	_, err := v.Emplace(0, l.ctor(9))
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{1, 2, 3}, values(v))
	assert.Equal(t, 4, v.Cap())
	assert.Equal(t, 3, l.live)

	l.failNext(0)
	_, err = v.InsertCopy(1, v.At(2))
	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, []int{1, 2, 3}, values(v))
}

func TestInsertCopyOfOwnElement(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1, 2, 3)

	_, err := v.InsertCopy(0, v.At(2))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2, 3}, values(v))

	_, err = v.InsertCopy(1, v.Back())
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3, 1, 2, 3}, values(v))
	assert.Equal(t, 5, l.live)
}

func TestInsertAllocationFailure(t *testing.T) {
	withLimit(t, 48)
	v := fromInts(t, 1, 2, 3, 4)

	_, err := v.Insert(2, 9)
	require.ErrorIs(t, err, mem.ErrOutOfMemory)
	assert.Equal(t, []int{1, 2, 3, 4}, ints(v))
	assert.Equal(t, 4, v.Cap())
}

func TestEraseMiddle(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1, 2, 3)

	pos := v.Erase(1)
	assert.Equal(t, 1, pos)
	assert.Equal(t, []int{1, 3}, values(v))
	assert.Equal(t, 3, v.Get(pos).v)
	assert.Equal(t, 2, l.live)
	assert.Equal(t, 4, v.Cap())
}

func TestEraseLastReturnsEnd(t *testing.T) {
	v := fromInts(t, 1, 2, 3)
	pos := v.Erase(2)
	assert.Equal(t, v.End(), pos)
	assert.Equal(t, []int{1, 2}, ints(v))
}

func TestEraseClearsVacatedSlot(t *testing.T) {
	v := New[*int]()
	for i := 0; i < 3; i++ {
		x := i
		require.NoError(t, v.PushBack(&x))
	}
	v.Erase(0)
	assert.Equal(t, 2, v.Len())
	assert.Nil(t, v.buf.Slots(0, v.Cap())[2])
}

func TestDestroyCalledOncePerElement(t *testing.T) {
	var l lifecycle
	v := newTracked(t, &l, 1, 2, 3, 4, 5)
	_, err := v.Emplace(2, l.ctor(6))
	require.NoError(t, err)
	v.Erase(0)
	v.PopBack()
	require.NoError(t, v.Resize(8))
	require.NoError(t, v.Resize(1))
	require.NoError(t, v.ShrinkToFit())
	v.Free()

	assert.Equal(t, 0, l.live)
	assert.Zero(t, l.badDestroy)
}

func TestContractViolationsAssert(t *testing.T) {
	prev := ut.SetDebugChecks(true)
	defer ut.SetDebugChecks(prev)

	v := New[int]()
	require.Panics(t, func() { v.PopBack() })
	require.Panics(t, func() { v.Erase(0) })
	require.Panics(t, func() { _, _ = v.Insert(1, 5) })
	require.Panics(t, func() { _ = v.Resize(-1) })
	assert.Equal(t, 0, v.Len())
}
