package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	assert.False(t, a.IsZero())
	assert.True(t, p.Alive(a))
	assert.Equal(t, 1, p.Live())

	p.Destroy(a)
	assert.False(t, p.Alive(a))
	assert.Equal(t, 0, p.Live())

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index(), "freed slot is reused")
	assert.NotEqual(t, a.Generation(), b.Generation())
	assert.False(t, p.Alive(a), "stale handle must stay dead after reuse")
	assert.True(t, p.Alive(b))

	p.Destroy(a) // stale: ignored
	assert.True(t, p.Alive(b))
	assert.Equal(t, 1, p.Live())
}

func TestEntityPoolUnknownID(t *testing.T) {
	p := NewEntityPool()
	assert.False(t, p.Alive(NewEntityID(42, 1)))
	assert.False(t, p.Alive(0))
	p.Destroy(NewEntityID(42, 1))
	assert.Equal(t, 0, p.Live())
}
