package inventory

import "github.com/mamadbah2/fleetstock/internal/domain/models"

// SeedSnapshot returns the initial warehouse and fleet used on first start and
// by Reset.
func SeedSnapshot() models.StockSnapshot {
	return models.StockSnapshot{
		Inventory: []models.InventoryItem{
			{ID: "P-001", Name: "Drop-out fuse link 10K", Category: "Fuse", Unit: "pcs", Quantity: 120, MinThreshold: 30},
			{ID: "P-002", Name: "Drop-out fuse link 25K", Category: "Fuse", Unit: "pcs", Quantity: 80, MinThreshold: 20},
			{ID: "P-003", Name: "Pin insulator 22kV", Category: "Insulator", Unit: "pcs", Quantity: 40, MinThreshold: 10},
			{ID: "P-004", Name: "Suspension insulator", Category: "Insulator", Unit: "pcs", Quantity: 25, MinThreshold: 10},
			{ID: "P-005", Name: "Service wire 2x10 mm2", Category: "Cable", Unit: "m", Quantity: 500, MinThreshold: 100},
			{ID: "P-006", Name: "Compression connector", Category: "Connector", Unit: "pcs", Quantity: 150, MinThreshold: 50},
			{ID: "P-007", Name: "Lightning arrester 21kV", Category: "Protection", Unit: "pcs", Quantity: 8, MinThreshold: 10},
			{ID: "P-008", Name: "Energy meter 5(15)A", Category: "Meter", Unit: "pcs", Quantity: 30, MinThreshold: 15},
			{ID: "P-009", Name: "Insulation tape", Category: "Consumable", Unit: "roll", Quantity: 60, MinThreshold: 20},
			{ID: "P-010", Name: "Cable tie 12 inch", Category: "Consumable", Unit: "pack", Quantity: 12, MinThreshold: 5},
		},
		Vehicles: []models.VehicleInventory{
			{VehicleID: "V-01", Name: "Service truck 1", Items: []models.AllocationLine{
				{ItemID: "P-001", Quantity: 10},
				{ItemID: "P-006", Quantity: 20},
				{ItemID: "P-009", Quantity: 5},
			}},
			{VehicleID: "V-02", Name: "Service truck 2", Items: []models.AllocationLine{
				{ItemID: "P-002", Quantity: 6},
				{ItemID: "P-005", Quantity: 50},
			}},
			{VehicleID: "V-03", Name: "Bucket truck"},
		},
	}
}
