package stock

import "github.com/mamadbah2/fleetstock/internal/domain/models"

// LowStockItems returns the items whose quantity is at or below their minimum
// threshold, in catalog order. The result is never nil.
func LowStockItems(items []models.InventoryItem) []models.InventoryItem {
	low := make([]models.InventoryItem, 0)
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low
}
