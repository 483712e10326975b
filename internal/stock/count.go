package stock

import (
	"fmt"
	"strings"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

// CountLine is one physically counted item.
type CountLine struct {
	ItemID          string `json:"itemId" binding:"required"`
	CountedQuantity int    `json:"countedQuantity" binding:"gte=0"`
}

// SubmitCount records a physical count for a vehicle and makes it the new
// allocation for every counted item. Items left out of the count keep their
// quantity. The returned log includes zero-variance entries.
func (e *Engine) SubmitCount(vehicleID, countedBy string, counts []CountLine) (models.DailyCountLog, error) {
	vehicle, ok := e.fleet.Get(vehicleID)
	if !ok {
		return models.DailyCountLog{}, fmt.Errorf("vehicle %s: %w", vehicleID, ErrNotFound)
	}
	countedBy = strings.TrimSpace(countedBy)
	if countedBy == "" {
		return models.DailyCountLog{}, fmt.Errorf("count for %s has no counter: %w", vehicleID, ErrInvalidRequest)
	}
	if len(counts) == 0 {
		return models.DailyCountLog{}, fmt.Errorf("count for %s has no lines: %w", vehicleID, ErrInvalidRequest)
	}

	entries := make([]models.CountEntry, 0, len(counts))
	seen := make(map[string]struct{}, len(counts))
	for _, c := range counts {
		if c.ItemID == "" {
			return models.DailyCountLog{}, fmt.Errorf("count for %s: empty item id: %w", vehicleID, ErrInvalidRequest)
		}
		if _, dup := seen[c.ItemID]; dup {
			return models.DailyCountLog{}, fmt.Errorf("item %s counted twice: %w", c.ItemID, ErrInvalidRequest)
		}
		seen[c.ItemID] = struct{}{}

		if c.CountedQuantity < 0 {
			return models.DailyCountLog{}, fmt.Errorf("item %s counted %d: %w", c.ItemID, c.CountedQuantity, ErrInvalidQuantity)
		}
		if !e.countable(vehicle, c.ItemID) {
			return models.DailyCountLog{}, fmt.Errorf("item %s: %w", c.ItemID, ErrNotFound)
		}

		expected := vehicle.QuantityOf(c.ItemID)
		entries = append(entries, models.CountEntry{
			ItemID:           c.ItemID,
			ExpectedQuantity: expected,
			CountedQuantity:  c.CountedQuantity,
			Variance:         c.CountedQuantity - expected,
		})
	}

	before := e.Snapshot()
	for _, entry := range entries {
		if err := e.fleet.SetItemQuantity(vehicleID, entry.ItemID, entry.CountedQuantity); err != nil {
			_ = e.Restore(before)
			return models.DailyCountLog{}, fmt.Errorf("apply count to %s: %w", vehicleID, err)
		}
	}

	return models.DailyCountLog{
		ID:        e.newID(),
		VehicleID: vehicleID,
		Timestamp: e.now().UTC(),
		CountedBy: countedBy,
		Entries:   entries,
	}, nil
}

// countable accepts items known to the catalog or already carried by the
// vehicle, so a dangling allocation can still be counted down.
func (e *Engine) countable(vehicle models.VehicleInventory, itemID string) bool {
	if _, ok := e.catalog.Get(itemID); ok {
		return true
	}
	for _, line := range vehicle.Items {
		if line.ItemID == itemID {
			return true
		}
	}
	return false
}
