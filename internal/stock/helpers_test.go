package stock

import (
	"fmt"
	"testing"
	"time"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

var fixedNow = time.Date(2025, 3, 14, 8, 30, 0, 0, time.UTC)

func newTestEngine(t *testing.T, items []models.InventoryItem, vehicles []models.VehicleInventory) *Engine {
	t.Helper()

	catalog, err := NewCatalog(items)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	fleet, err := NewFleet(vehicles)
	if err != nil {
		t.Fatalf("NewFleet: %v", err)
	}

	e := NewEngine(catalog, fleet, []string{"Ladder", "Voltage detector", "First aid kit"})
	e.now = func() time.Time { return fixedNow }
	seq := 0
	e.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return e
}

func sampleItems() []models.InventoryItem {
	return []models.InventoryItem{
		{ID: "P-001", Name: "Fuse 10A", Category: "Electrical", Unit: "pcs", Quantity: 10, MinThreshold: 5},
		{ID: "P-002", Name: "Cable tie", Category: "Consumable", Unit: "pack", Quantity: 3, MinThreshold: 3},
		{ID: "P-003", Name: "Insulation tape", Category: "Consumable", Unit: "roll", Quantity: 20, MinThreshold: 2},
	}
}

func sampleVehicles() []models.VehicleInventory {
	return []models.VehicleInventory{
		{VehicleID: "V-1", Name: "Truck 1"},
		{VehicleID: "V-2", Name: "Truck 2", Items: []models.AllocationLine{{ItemID: "P-002", Quantity: 2}}},
	}
}

func catalogTotal(items []models.InventoryItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
