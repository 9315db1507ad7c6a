package types

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeKey(t *testing.T) {
	tests := []struct {
		name   string
		v0, v1 int
		lo, hi int
		str    string
	}{
		{"ascending", 0, 1, 0, 1, "[0,1]"},
		{"descending", 100, 1, 1, 100, "[1,100]"},
		{"loop", 7, 7, 7, 7, "[7,7]"},
		{"largest index", 1<<32 - 1, 3, 3, 1<<32 - 1, "[3,4294967295]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ek := NewEdgeKey(tt.v0, tt.v1)
			lo, hi := ek.Vertices()
			assert.Equal(t, [2]int{tt.lo, tt.hi}, [2]int{lo, hi})
			assert.Equal(t, tt.str, ek.String())
			assert.Equal(t, ek, NewEdgeKey(tt.v1, tt.v0))
		})
	}

	assert.NotEqual(t, NewEdgeKey(17, 22), NewEdgeKey(17, 23))
	assert.Panics(t, func() { NewEdgeKey(-1, 2) })
	assert.Panics(t, func() { NewEdgeKey(2, 1<<32) })

	// Keys sort by lower vertex, then upper vertex
	keys := []EdgeKey{NewEdgeKey(9, 2), NewEdgeKey(1, 30), NewEdgeKey(2, 4)}
	slices.Sort(keys)
	assert.Equal(t, []EdgeKey{NewEdgeKey(1, 30), NewEdgeKey(2, 4), NewEdgeKey(2, 9)}, keys)
}
