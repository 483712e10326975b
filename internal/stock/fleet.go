package stock

import (
	"fmt"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

// Fleet holds the per-vehicle allocations in registration order. It is not
// safe for concurrent use; callers serialise access.
type Fleet struct {
	vehicles []models.VehicleInventory
	index    map[string]int
}

// NewFleet builds a fleet from a persisted collection. Item ids are not checked
// against the catalog.
func NewFleet(vehicles []models.VehicleInventory) (*Fleet, error) {
	f := &Fleet{}
	if err := f.Replace(vehicles); err != nil {
		return nil, err
	}
	return f, nil
}

// Replace swaps the whole collection after validating every vehicle.
func (f *Fleet) Replace(vehicles []models.VehicleInventory) error {
	next := make([]models.VehicleInventory, 0, len(vehicles))
	index := make(map[string]int, len(vehicles))

	for _, v := range vehicles {
		if err := validateVehicle(v); err != nil {
			return err
		}
		if _, dup := index[v.VehicleID]; dup {
			return fmt.Errorf("duplicate vehicle %s: %w", v.VehicleID, ErrInvalidRequest)
		}
		index[v.VehicleID] = len(next)
		next = append(next, v.Clone())
	}

	f.vehicles = next
	f.index = index
	return nil
}

// Get returns a copy of the vehicle allocation.
func (f *Fleet) Get(vehicleID string) (models.VehicleInventory, bool) {
	i, ok := f.index[vehicleID]
	if !ok {
		return models.VehicleInventory{}, false
	}
	return f.vehicles[i].Clone(), true
}

// List returns copies of every vehicle in registration order.
func (f *Fleet) List() []models.VehicleInventory {
	out := make([]models.VehicleInventory, len(f.vehicles))
	for i, v := range f.vehicles {
		out[i] = v.Clone()
	}
	return out
}

// Upsert registers a vehicle, or renames an existing one. The items of an
// existing vehicle only change through SetItemQuantity.
func (f *Fleet) Upsert(vehicle models.VehicleInventory) (models.VehicleInventory, error) {
	if err := validateVehicle(vehicle); err != nil {
		return models.VehicleInventory{}, err
	}

	if i, ok := f.index[vehicle.VehicleID]; ok {
		f.vehicles[i].Name = vehicle.Name
		return f.vehicles[i].Clone(), nil
	}

	f.index[vehicle.VehicleID] = len(f.vehicles)
	f.vehicles = append(f.vehicles, vehicle.Clone())
	return vehicle.Clone(), nil
}

// SetItemQuantity sets the absolute allocation of itemID on a vehicle, adding
// a new line when the vehicle does not carry the item yet.
func (f *Fleet) SetItemQuantity(vehicleID, itemID string, quantity int) error {
	i, ok := f.index[vehicleID]
	if !ok {
		return fmt.Errorf("vehicle %s: %w", vehicleID, ErrNotFound)
	}
	if quantity < 0 {
		return fmt.Errorf("vehicle %s item %s quantity %d: %w", vehicleID, itemID, quantity, ErrInvalidQuantity)
	}
	if itemID == "" {
		return fmt.Errorf("vehicle %s: empty item id: %w", vehicleID, ErrInvalidRequest)
	}

	v := &f.vehicles[i]
	for j := range v.Items {
		if v.Items[j].ItemID == itemID {
			v.Items[j].Quantity = quantity
			return nil
		}
	}
	v.Items = append(v.Items, models.AllocationLine{ItemID: itemID, Quantity: quantity})
	return nil
}

func validateVehicle(v models.VehicleInventory) error {
	seen := make(map[string]struct{}, len(v.Items))
	for _, line := range v.Items {
		if line.Quantity < 0 {
			return fmt.Errorf("vehicle %s item %s quantity %d: %w", v.VehicleID, line.ItemID, line.Quantity, ErrInvalidQuantity)
		}
		if _, dup := seen[line.ItemID]; dup {
			return fmt.Errorf("vehicle %s lists item %s twice: %w", v.VehicleID, line.ItemID, ErrInvalidRequest)
		}
		seen[line.ItemID] = struct{}{}
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("vehicle %q: %v: %w", v.VehicleID, err, ErrInvalidRequest)
	}
	return nil
}
