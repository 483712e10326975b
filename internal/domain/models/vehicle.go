package models

// AllocationLine is the quantity of one catalog item carried by a vehicle.
type AllocationLine struct {
	ItemID   string `bson:"item_id" json:"itemId" validate:"required"`
	Quantity int    `bson:"quantity" json:"quantity" validate:"gte=0"`
}

// VehicleInventory is the stock allocated to a single service vehicle.
type VehicleInventory struct {
	VehicleID string           `bson:"vehicle_id" json:"vehicleId" validate:"required"`
	Name      string           `bson:"name,omitempty" json:"name,omitempty"`
	Items     []AllocationLine `bson:"items" json:"items" validate:"dive"`
}

// Validate checks field-level constraints.
func (v VehicleInventory) Validate() error {
	return validate.Struct(v)
}

// QuantityOf returns the allocated quantity for itemID, or zero when absent.
func (v VehicleInventory) QuantityOf(itemID string) int {
	for _, line := range v.Items {
		if line.ItemID == itemID {
			return line.Quantity
		}
	}
	return 0
}

// Clone returns a deep copy so callers cannot alias the items slice.
func (v VehicleInventory) Clone() VehicleInventory {
	items := make([]AllocationLine, len(v.Items))
	copy(items, v.Items)
	return VehicleInventory{VehicleID: v.VehicleID, Name: v.Name, Items: items}
}
