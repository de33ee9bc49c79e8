package optional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type link struct {
	next *link
	val  *string
}

func TestMapShortCircuitsOnAbsent(t *testing.T) {
	called := false
	out := Map((*link)(nil), func(l *link) *link {
		called = true
		return l.next
	})
	assert.Nil(t, out)
	assert.False(t, called)
}

func TestMapChain(t *testing.T) {
	v := "leaf"
	root := &link{next: &link{val: &v}}

	got := Map(Map(root, func(l *link) *link { return l.next }), func(l *link) *string { return l.val })
	assert.Equal(t, "leaf", OrElse(got, "none"))

	missing := Map(Map(&link{}, func(l *link) *link { return l.next }), func(l *link) *string { return l.val })
	assert.Equal(t, "none", OrElse(missing, "none"))
	assert.False(t, Present(missing))
}

func TestGet(t *testing.T) {
	v, ok := Get(Of(42))
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = Get[int](nil)
	assert.False(t, ok)
	assert.Zero(t, v)
}
