package stock

import (
	"errors"
	"testing"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

func TestNewFleet_ToleratesDanglingReferences(t *testing.T) {
	fleet, err := NewFleet([]models.VehicleInventory{
		{VehicleID: "V-9", Items: []models.AllocationLine{{ItemID: "REMOVED-ITEM", Quantity: 3}}},
	})
	if err != nil {
		t.Fatalf("expected load to succeed, got %v", err)
	}

	v, ok := fleet.Get("V-9")
	if !ok || v.QuantityOf("REMOVED-ITEM") != 3 {
		t.Errorf("unexpected vehicle: %+v", v)
	}
}

func TestNewFleet_RejectsDuplicateItemLines(t *testing.T) {
	_, err := NewFleet([]models.VehicleInventory{
		{VehicleID: "V-1", Items: []models.AllocationLine{{ItemID: "A", Quantity: 1}, {ItemID: "A", Quantity: 2}}},
	})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestFleet_SetItemQuantity(t *testing.T) {
	fleet, _ := NewFleet(sampleVehicles())

	tests := []struct {
		name      string
		vehicleID string
		itemID    string
		quantity  int
		want      error
	}{
		{name: "unknown vehicle", vehicleID: "V-404", itemID: "P-001", quantity: 1, want: ErrNotFound},
		{name: "negative", vehicleID: "V-1", itemID: "P-001", quantity: -1, want: ErrInvalidQuantity},
		{name: "new line", vehicleID: "V-1", itemID: "P-001", quantity: 4},
		{name: "overwrite", vehicleID: "V-2", itemID: "P-002", quantity: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fleet.SetItemQuantity(tt.vehicleID, tt.itemID, tt.quantity)
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			v, _ := fleet.Get(tt.vehicleID)
			if got := v.QuantityOf(tt.itemID); got != tt.quantity {
				t.Errorf("expected %d, got %d", tt.quantity, got)
			}
		})
	}

	v2, _ := fleet.Get("V-2")
	if len(v2.Items) != 1 {
		t.Errorf("expected overwrite to keep a single line, got %+v", v2.Items)
	}
}

func TestFleet_GetReturnsCopy(t *testing.T) {
	fleet, _ := NewFleet(sampleVehicles())

	v, _ := fleet.Get("V-2")
	v.Items[0].Quantity = 100

	again, _ := fleet.Get("V-2")
	if again.Items[0].Quantity != 2 {
		t.Errorf("expected stored quantity 2, got %d", again.Items[0].Quantity)
	}
}

func TestFleet_UpsertExistingOnlyRenames(t *testing.T) {
	fleet, _ := NewFleet(sampleVehicles())

	got, err := fleet.Upsert(models.VehicleInventory{VehicleID: "V-2", Name: "Crane truck", Items: []models.AllocationLine{{ItemID: "P-001", Quantity: 50}}})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if got.Name != "Crane truck" || got.QuantityOf("P-001") != 0 || got.QuantityOf("P-002") != 2 {
		t.Errorf("unexpected vehicle after upsert: %+v", got)
	}
}
