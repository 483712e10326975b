package stock

import (
	"fmt"
	"math"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

// TransferLine requests quantity units of an item for a vehicle.
type TransferLine struct {
	ItemID   string `json:"itemId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// TransferOutcome carries the post-transfer state of the touched catalog items
// and the receiving vehicle.
type TransferOutcome struct {
	Items   []models.InventoryItem  `json:"items"`
	Vehicle models.VehicleInventory `json:"vehicle"`
}

// Transfer moves stock from the warehouse to a vehicle. Every line is validated
// before anything is applied, so either the whole request moves or nothing does.
// Lines naming the same item are summed.
func (e *Engine) Transfer(vehicleID string, lines []TransferLine) (TransferOutcome, error) {
	vehicle, ok := e.fleet.Get(vehicleID)
	if !ok {
		return TransferOutcome{}, fmt.Errorf("vehicle %s: %w", vehicleID, ErrNotFound)
	}
	if len(lines) == 0 {
		return TransferOutcome{}, fmt.Errorf("transfer to %s has no lines: %w", vehicleID, ErrInvalidRequest)
	}

	requested := make(map[string]int, len(lines))
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return TransferOutcome{}, fmt.Errorf("item %s quantity %d: %w", line.ItemID, line.Quantity, ErrInvalidRequest)
		}
		if _, ok := e.catalog.Get(line.ItemID); !ok {
			return TransferOutcome{}, fmt.Errorf("unknown item %q: %w", line.ItemID, ErrInvalidRequest)
		}
		if _, seen := requested[line.ItemID]; !seen {
			order = append(order, line.ItemID)
		}
		if requested[line.ItemID] > math.MaxInt-line.Quantity {
			return TransferOutcome{}, fmt.Errorf("item %s total quantity overflows: %w", line.ItemID, ErrInvalidRequest)
		}
		requested[line.ItemID] += line.Quantity
	}

	for _, id := range order {
		item, _ := e.catalog.Get(id)
		if item.Quantity < requested[id] {
			return TransferOutcome{}, &ShortageError{ItemID: id, Requested: requested[id], Available: item.Quantity}
		}
		if vehicle.QuantityOf(id) > math.MaxInt-requested[id] {
			return TransferOutcome{}, fmt.Errorf("vehicle %s item %s allocation overflows: %w", vehicleID, id, ErrInvalidRequest)
		}
	}

	before := e.Snapshot()
	outcome, err := e.applyTransfer(vehicle, order, requested)
	if err != nil {
		// Unreachable after validation.
		_ = e.Restore(before)
		return TransferOutcome{}, fmt.Errorf("apply transfer to %s: %w", vehicleID, err)
	}
	return outcome, nil
}

func (e *Engine) applyTransfer(vehicle models.VehicleInventory, order []string, requested map[string]int) (TransferOutcome, error) {
	updated := make([]models.InventoryItem, 0, len(order))
	for _, id := range order {
		item, err := e.catalog.AdjustQuantity(id, -requested[id])
		if err != nil {
			return TransferOutcome{}, err
		}
		updated = append(updated, item)

		if err := e.fleet.SetItemQuantity(vehicle.VehicleID, id, vehicle.QuantityOf(id)+requested[id]); err != nil {
			return TransferOutcome{}, err
		}
	}

	after, _ := e.fleet.Get(vehicle.VehicleID)
	return TransferOutcome{Items: updated, Vehicle: after}, nil
}
