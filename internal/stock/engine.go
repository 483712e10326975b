// Package stock implements the stock state-management rules: warehouse and
// vehicle stores, transfers, count reconciliation, equipment checklists and
// low-stock evaluation. It performs no I/O and is not safe for concurrent use;
// the inventory service serialises every call.
package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

// Engine binds the catalog and fleet stores to the operations spanning them.
type Engine struct {
	catalog *Catalog
	fleet   *Fleet
	tools   []string

	now   func() time.Time
	newID func() string
}

// NewEngine wires an engine over the given stores and equipment reference list.
func NewEngine(catalog *Catalog, fleet *Fleet, tools []string) *Engine {
	return &Engine{
		catalog: catalog,
		fleet:   fleet,
		tools:   NormalizeTools(tools),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Catalog exposes the warehouse store.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Fleet exposes the vehicle store.
func (e *Engine) Fleet() *Fleet {
	return e.fleet
}

// Snapshot captures both collections.
func (e *Engine) Snapshot() models.StockSnapshot {
	return models.StockSnapshot{
		Inventory: e.catalog.List(),
		Vehicles:  e.fleet.List(),
	}
}

// Restore replaces both collections. Either both are replaced or neither is.
func (e *Engine) Restore(snapshot models.StockSnapshot) error {
	catalog, err := NewCatalog(snapshot.Inventory)
	if err != nil {
		return err
	}
	fleet, err := NewFleet(snapshot.Vehicles)
	if err != nil {
		return err
	}

	*e.catalog = *catalog
	*e.fleet = *fleet
	return nil
}

// LowStock evaluates the current catalog against item thresholds.
func (e *Engine) LowStock() []models.InventoryItem {
	return LowStockItems(e.catalog.List())
}
