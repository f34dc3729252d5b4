package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQTableDefaultsToZero(t *testing.T) {
	table := NewQTable(4)
	assert.Equal(t, 0.0, table.Get("s", 2))
	_, ok := table.Lookup("s", 2)
	assert.False(t, ok)
	assert.False(t, table.HasState("s"))
	assert.Equal(t, 0, table.Len())

	table.Set("s", 2, 1.5)
	assert.Equal(t, 1.5, table.Get("s", 2))
	assert.Equal(t, 0.0, table.Get("s", 3))
	_, ok = table.Lookup("s", 3)
	assert.False(t, ok)
	assert.Equal(t, 1, table.Len())
}

func TestQTableArgMax(t *testing.T) {
	table := NewQTable(4)
	a, v := table.ArgMax("s")
	assert.Equal(t, 0, a)
	assert.Equal(t, 0.0, v)

	table.Set("s", 3, 2)
	table.Set("s", 1, 2)
	a, v = table.ArgMax("s")
	assert.Equal(t, 1, a)
	assert.Equal(t, 2.0, v)

	table.Set("neg", 0, -1)
	a, v = table.ArgMax("neg")
	assert.Equal(t, 1, a)
	assert.Equal(t, 0.0, v)
	assert.Equal(t, 0.0, table.Max("neg"))
}

func TestQTableEntriesAreOrdered(t *testing.T) {
	table := NewQTable(4)
	table.Set("b", 2, 1)
	table.Set("a", 3, 2)
	table.Set("b", 0, 3)
	table.Set("a", 1, 4)

	assert.Equal(t, []string{"a", "b"}, table.States())
	assert.Equal(t, []QEntry{
		{State: "a", Action: 1, Value: 4},
		{State: "a", Action: 3, Value: 2},
		{State: "b", Action: 0, Value: 3},
		{State: "b", Action: 2, Value: 1},
	}, table.Entries())
}
