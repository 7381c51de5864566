package cart

import (
	"sort"

	"github.com/Henry-Paul/Paperless-Restaurant-Menu/models"
)

// Catalog resolves a menu item by ID. Implementations return false when
// the item is unknown or no longer available; the cart treats such items
// as contributing zero to the total rather than failing.
type Catalog interface {
	Item(id uint) (models.MenuItem, bool)
}

// Cart is the quantity map for one browsing session. It is never
// persisted and is owned by exactly one session, so it carries no lock.
type Cart struct {
	items map[uint]int
}

func New() *Cart {
	return &Cart{items: make(map[uint]int)}
}

// Add increments the quantity for an item, creating the entry at 1.
func (c *Cart) Add(itemID uint) {
	c.items[itemID]++
}

// Remove decrements the quantity for an item and deletes the entry when
// the quantity would drop to zero or below.
func (c *Cart) Remove(itemID uint) {
	if c.items[itemID] <= 1 {
		delete(c.items, itemID)
		return
	}
	c.items[itemID]--
}

// Count returns the total number of units across all entries.
func (c *Cart) Count() int {
	n := 0
	for _, qty := range c.items {
		n += qty
	}
	return n
}

// Total sums catalog price × quantity over all entries. Items the
// catalog cannot resolve contribute 0.
func (c *Cart) Total(catalog Catalog) float64 {
	var total float64
	for id, qty := range c.items {
		if item, ok := catalog.Item(id); ok {
			total += item.Price * float64(qty)
		}
	}
	return total
}

// Lines captures a point-in-time snapshot of the cart as order line
// items (id, name, price, quantity), sorted by item ID. Entries the
// catalog cannot resolve are dropped from the snapshot, matching their
// zero contribution to Total.
func (c *Cart) Lines(catalog Catalog) []models.OrderItem {
	ids := make([]uint, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var lines []models.OrderItem
	for _, id := range ids {
		item, ok := catalog.Item(id)
		if !ok {
			continue
		}
		lines = append(lines, models.OrderItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   c.items[id],
		})
	}
	return lines
}

// Items returns a copy of the quantity map so callers can render the
// cart without aliasing its internal state.
func (c *Cart) Items() map[uint]int {
	out := make(map[uint]int, len(c.items))
	for id, qty := range c.items {
		out[id] = qty
	}
	return out
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = make(map[uint]int)
}

// Empty reports whether the cart has no entries.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}
