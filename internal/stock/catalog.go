package stock

import (
	"fmt"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

// Catalog holds the warehouse items in insertion order. It is not safe for
// concurrent use; callers serialise access.
type Catalog struct {
	items []models.InventoryItem
	index map[string]int
}

// NewCatalog builds a catalog from a persisted collection.
func NewCatalog(items []models.InventoryItem) (*Catalog, error) {
	c := &Catalog{}
	if err := c.Replace(items); err != nil {
		return nil, err
	}
	return c, nil
}

// Replace swaps the whole collection, rejecting duplicate ids and negative quantities.
func (c *Catalog) Replace(items []models.InventoryItem) error {
	next := make([]models.InventoryItem, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		if item.Quantity < 0 {
			return fmt.Errorf("item %s quantity %d: %w", item.ID, item.Quantity, ErrInvalidQuantity)
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %q: %v: %w", item.ID, err, ErrInvalidRequest)
		}
		if _, dup := index[item.ID]; dup {
			return fmt.Errorf("duplicate item %s: %w", item.ID, ErrInvalidRequest)
		}
		index[item.ID] = len(next)
		next = append(next, item)
	}

	c.items = next
	c.index = index
	return nil
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (models.InventoryItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.InventoryItem{}, false
	}
	return c.items[i], true
}

// List returns a copy of every item in catalog order.
func (c *Catalog) List() []models.InventoryItem {
	out := make([]models.InventoryItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of catalog items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Upsert adds a new item or updates the descriptive fields and threshold of an
// existing one. The quantity of an existing item is left untouched; it only
// moves through AdjustQuantity.
func (c *Catalog) Upsert(item models.InventoryItem) (models.InventoryItem, error) {
	if item.Quantity < 0 || item.MinThreshold < 0 {
		return models.InventoryItem{}, fmt.Errorf("item %s: %w", item.ID, ErrInvalidQuantity)
	}
	if err := item.Validate(); err != nil {
		return models.InventoryItem{}, fmt.Errorf("item %q: %v: %w", item.ID, err, ErrInvalidRequest)
	}

	if i, ok := c.index[item.ID]; ok {
		item.Quantity = c.items[i].Quantity
		c.items[i] = item
		return item, nil
	}

	c.index[item.ID] = len(c.items)
	c.items = append(c.items, item)
	return item, nil
}

// AdjustQuantity applies delta to an item's quantity. It is the only path that
// changes warehouse stock and never lets it go below zero.
func (c *Catalog) AdjustQuantity(id string, delta int) (models.InventoryItem, error) {
	i, ok := c.index[id]
	if !ok {
		return models.InventoryItem{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}

	item := c.items[i]
	if delta < 0 && item.Quantity+delta < 0 {
		return models.InventoryItem{}, &ShortageError{ItemID: id, Requested: -delta, Available: item.Quantity}
	}

	item.Quantity += delta
	c.items[i] = item
	return item, nil
}

// SetQuantity is the administrative correction tool: it sets an absolute
// quantity, clamping negative input to zero.
func (c *Catalog) SetQuantity(id string, quantity int) (models.InventoryItem, error) {
	current, ok := c.Get(id)
	if !ok {
		return models.InventoryItem{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	if quantity < 0 {
		quantity = 0
	}
	return c.AdjustQuantity(id, quantity-current.Quantity)
}

// Remove deletes an item. Vehicle allocations referencing it are left dangling.
func (c *Catalog) Remove(id string) error {
	i, ok := c.index[id]
	if !ok {
		return fmt.Errorf("item %s: %w", id, ErrNotFound)
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, id)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ID] = j
	}
	return nil
}
