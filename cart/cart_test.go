package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

type mapCatalog map[uint]models.MenuItem

func (m mapCatalog) Item(id uint) (models.MenuItem, bool) {
	item, ok := m[id]
	return item, ok
}

func testCatalog() mapCatalog {
	return mapCatalog{
		1: {ID: 1, Name: "Paneer Tikka", Price: 100},
		2: {ID: 2, Name: "Masala Chai", Price: 50},
	}
}

func TestAddAndCount(t *testing.T) {
	c := New()
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Count())

	c.Add(1)
	c.Add(1)
	c.Add(2)
	assert.Equal(t, 3, c.Count())
	assert.False(t, c.Empty())
	assert.Equal(t, map[uint]int{1: 2, 2: 1}, c.Items())
}

func TestRemoveDeletesAtZero(t *testing.T) {
	c := New()
	c.Add(1)
	c.Add(1)

	c.Remove(1)
	assert.Equal(t, map[uint]int{1: 1}, c.Items())

	c.Remove(1)
	assert.True(t, c.Empty())

	// Removing an absent item never goes negative
	c.Remove(1)
	c.Remove(99)
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Empty())
}

func TestTotal(t *testing.T) {
	cat := testCatalog()
	c := New()
	c.Add(1)
	c.Add(1)
	c.Add(2)
	assert.InDelta(t, 250.0, c.Total(cat), 1e-9)

	// Adding then removing the same item restores the prior total exactly
	before := c.Total(cat)
	c.Add(2)
	c.Remove(2)
	assert.Equal(t, before, c.Total(cat))
}

func TestTotalUnresolvedContributesZero(t *testing.T) {
	cat := testCatalog()
	c := New()
	c.Add(1)
	c.Add(404) // not in catalog
	assert.InDelta(t, 100.0, c.Total(cat), 1e-9)
	assert.Equal(t, 2, c.Count())
}

func TestLinesSnapshot(t *testing.T) {
	cat := testCatalog()
	c := New()
	c.Add(2)
	c.Add(1)
	c.Add(1)
	c.Add(404)

	lines := c.Lines(cat)
	require.Len(t, lines, 2)
	assert.Equal(t, uint(1), lines[0].MenuItemID)
	assert.Equal(t, "Paneer Tikka", lines[0].Name)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, uint(2), lines[1].MenuItemID)
	assert.Equal(t, 1, lines[1].Quantity)

	// Snapshot total matches cart total even with an unresolved entry
	var sum float64
	for _, l := range lines {
		sum += l.Price * float64(l.Quantity)
	}
	assert.Equal(t, c.Total(cat), sum)
}

func TestItemsIsACopy(t *testing.T) {
	c := New()
	c.Add(1)

	view := c.Items()
	view[1] = 99
	view[2] = 5

	assert.Equal(t, 1, c.Count())
	assert.Equal(t, map[uint]int{1: 1}, c.Items())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(1)
	c.Add(2)
	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Count())
}
