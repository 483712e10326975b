package models

// InventoryItem is a warehouse catalog entry. ID doubles as the payload printed on
// the shelf QR tag.
type InventoryItem struct {
	ID           string `bson:"id" json:"id" validate:"required"`
	Name         string `bson:"name" json:"name" validate:"required"`
	Category     string `bson:"category" json:"category"`
	Unit         string `bson:"unit" json:"unit"`
	Quantity     int    `bson:"quantity" json:"quantity" validate:"gte=0"`
	MinThreshold int    `bson:"min_threshold" json:"minThreshold" validate:"gte=0"`
}

// IsLowStock reports whether the item has fallen to or below its threshold.
func (i InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinThreshold
}

// Validate checks field-level constraints.
func (i InventoryItem) Validate() error {
	return validate.Struct(i)
}
