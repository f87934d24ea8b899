package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDynamic_ReusesPutObjects(t *testing.T) {
	created := 0
	p := NewDynamic(func() interface{} {
		created++
		return &struct{ n int }{n: created}
	})

	first := p.Get()
	p.Put(first)
	second := p.Get()

	require.Same(t, first, second)
}

func TestDynamic_CreatesNewWhenEmpty(t *testing.T) {
	p := NewDynamic(func() interface{} { return new(int) })

	a := p.Get()
	b := p.Get()
	require.NotSame(t, a, b)
}
