package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestChildStreamsDiffer(t *testing.T) {
	root := New(7)
	c1, c2 := Child(root), Child(root)
	assert.NotEqual(t, c1.Uint64(), c2.Uint64())
}
