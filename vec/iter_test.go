package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeginEnd(t *testing.T) {
	v := fromInts(t, 4, 5, 6)
	assert.Equal(t, 0, v.Begin())
	assert.Equal(t, 3, v.End())

	var got []int
	for p := v.Begin(); p != v.End(); p++ {
		got = append(got, v.Get(p))
	}
	assert.Equal(t, []int{4, 5, 6}, got)

	empty := New[int]()
	assert.Equal(t, empty.Begin(), empty.End())
}

func TestAllStopsEarly(t *testing.T) {
	v := fromInts(t, 1, 2, 3, 4)
	var seen []int
	for i, x := range v.All() {
		if i == 2 {
			break
		}
		seen = append(seen, x)
	}
	assert.Equal(t, []int{1, 2}, seen)
}

func TestValues(t *testing.T) {
	v := fromInts(t, 1, 2, 3)
	sum := 0
	for x := range v.Values() {
		sum += x
	}
	assert.Equal(t, 6, sum)

	n := 0
	for range New[int]().Values() {
		n++
	}
	assert.Zero(t, n)
}
