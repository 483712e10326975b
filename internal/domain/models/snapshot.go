package models

// StockSnapshot is the self-contained document form of the catalog and fleet
// collections. Vehicle item references are not resolved against the inventory.
type StockSnapshot struct {
	Inventory []InventoryItem    `bson:"inventory" json:"inventory"`
	Vehicles  []VehicleInventory `bson:"vehicles" json:"vehicles"`
}
