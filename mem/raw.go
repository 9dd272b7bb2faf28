package mem

import (
	"math"
	"runtime"
	"unsafe"

	"github.com/wilhasse/rawvec/ut"
)

// RawBuffer owns storage for a fixed number of T slots. It knows nothing about
// which slots hold live elements and never constructs or destroys them; the
// owner must end every element's lifetime before Release.
//
// A RawBuffer must not be copied: both copies would release the same bytes.
// go vet reports copies; ownership moves with Take or Swap.
type RawBuffer[T any] struct {
	noCopy noCopy

	slots []T
	size  int
	alloc Allocator
}

// noCopy trips go vet's copylocks check for any struct that contains it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Acquire reserves storage for exactly capacity slots from DefaultAllocator.
// A zero capacity yields an empty buffer without touching the allocator.
func Acquire[T any](capacity int) (*RawBuffer[T], error) {
	if capacity < 0 {
		return nil, ErrOverflow
	}
	if capacity == 0 {
		return &RawBuffer[T]{}, nil
	}
	size, err := slotBytes[T](capacity)
	if err != nil {
		return nil, err
	}
	alloc := DefaultAllocator
	if err := alloc.Alloc(size); err != nil {
		return nil, err
	}
	slots, err := makeSlots[T](capacity)
	if err != nil {
		alloc.Free(size)
		return nil, err
	}
	return &RawBuffer[T]{slots: slots, size: size, alloc: alloc}, nil
}

func slotBytes[T any](capacity int) (int, error) {
	var zero T
	elem := int(unsafe.Sizeof(zero))
	if elem != 0 && capacity > math.MaxInt/elem {
		return 0, ErrOverflow
	}
	return capacity * elem, nil
}

// makeSlots turns a runtime refusal of make into ErrOutOfMemory.
func makeSlots[T any](capacity int) (slots []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			slots, err = nil, ErrOutOfMemory
		}
	}()
	return make([]T, capacity), nil
}

// Release drops the storage and returns its bytes to the allocator that
// admitted them. Slots are cleared so the garbage collector can reclaim
// anything they still reference. Releasing an empty buffer is a no-op.
func (b *RawBuffer[T]) Release() {
	if b.slots == nil {
		return
	}
	clear(b.slots)
	b.alloc.Free(b.size)
	*b = RawBuffer[T]{}
}

// Take transfers the storage to the returned buffer and leaves b empty.
func (b *RawBuffer[T]) Take() *RawBuffer[T] {
	out := &RawBuffer[T]{slots: b.slots, size: b.size, alloc: b.alloc}
	*b = RawBuffer[T]{}
	return out
}

// Swap exchanges storage with other.
func (b *RawBuffer[T]) Swap(other *RawBuffer[T]) {
	b.slots, other.slots = other.slots, b.slots
	b.size, other.size = other.size, b.size
	b.alloc, other.alloc = other.alloc, b.alloc
}

// Slot returns the address of slot i.
func (b *RawBuffer[T]) Slot(i int) *T {
	ut.Assertf(i >= 0 && i < len(b.slots), "slot %d < capacity %d", i, len(b.slots))
	return &b.slots[i]
}

// Slots returns slots [from, to). to may equal Cap, the one-past-last offset.
func (b *RawBuffer[T]) Slots(from, to int) []T {
	ut.Assertf(from >= 0 && from <= to && to <= len(b.slots),
		"slots [%d, %d) within capacity %d", from, to, len(b.slots))
	return b.slots[from:to:to]
}

// Cap returns the number of slots.
func (b *RawBuffer[T]) Cap() int {
	return len(b.slots)
}

// Bytes returns the number of bytes accounted for the storage.
func (b *RawBuffer[T]) Bytes() int {
	return b.size
}
