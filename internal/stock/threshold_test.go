package stock

import (
	"reflect"
	"testing"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

func TestLowStockItems(t *testing.T) {
	items := []models.InventoryItem{
		{ID: "A", Quantity: 0, MinThreshold: 0},
		{ID: "B", Quantity: 6, MinThreshold: 5},
		{ID: "C", Quantity: 5, MinThreshold: 5},
		{ID: "D", Quantity: 1, MinThreshold: 5},
	}

	got := LowStockItems(items)
	ids := make([]string, len(got))
	for i, item := range got {
		ids[i] = item.ID
	}
	if !reflect.DeepEqual(ids, []string{"A", "C", "D"}) {
		t.Errorf("expected [A C D], got %v", ids)
	}
}

func TestLowStockItems_NoneQualify(t *testing.T) {
	got := LowStockItems([]models.InventoryItem{{ID: "A", Quantity: 9, MinThreshold: 1}})
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestExportRows(t *testing.T) {
	rows := ExportRows(sampleItems()[:1])

	if len(rows) != 2 {
		t.Fatalf("expected header + 1 row, got %d", len(rows))
	}
	wantHeader := []interface{}{"id", "name", "category", "quantity", "unit", "minThreshold"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Errorf("unexpected header: %v", rows[0])
	}
	wantRow := []interface{}{"P-001", "Fuse 10A", "Electrical", 10, "pcs", 5}
	if !reflect.DeepEqual(rows[1], wantRow) {
		t.Errorf("unexpected row: %v", rows[1])
	}
}

func TestEngine_RestoreIsAllOrNothing(t *testing.T) {
	e := newTestEngine(t, sampleItems(), sampleVehicles())
	before := e.Snapshot()

	err := e.Restore(models.StockSnapshot{
		Inventory: []models.InventoryItem{{ID: "Z", Name: "z", Quantity: 1}},
		Vehicles:  []models.VehicleInventory{{VehicleID: "V-1"}, {VehicleID: "V-1"}},
	})
	if err == nil {
		t.Fatal("expected duplicate vehicle to be rejected")
	}
	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Errorf("restore partially applied")
	}
}
