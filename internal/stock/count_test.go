package stock

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

func TestSubmitCount_RecordsVarianceAndOverwritesAllocation(t *testing.T) {
	vehicles := []models.VehicleInventory{
		{VehicleID: "V-1", Items: []models.AllocationLine{
			{ItemID: "P-001", Quantity: 4},
			{ItemID: "P-002", Quantity: 2},
			{ItemID: "P-003", Quantity: 7},
		}},
	}
	e := newTestEngine(t, sampleItems(), vehicles)
	catalogBefore := e.Catalog().List()

	log, err := e.SubmitCount("V-1", "U-7", []CountLine{
		{ItemID: "P-001", CountedQuantity: 3},
		{ItemID: "P-002", CountedQuantity: 2},
	})
	if err != nil {
		t.Fatalf("SubmitCount: %v", err)
	}

	want := []models.CountEntry{
		{ItemID: "P-001", ExpectedQuantity: 4, CountedQuantity: 3, Variance: -1},
		{ItemID: "P-002", ExpectedQuantity: 2, CountedQuantity: 2, Variance: 0},
	}
	if !reflect.DeepEqual(log.Entries, want) {
		t.Errorf("unexpected entries:\n got %+v\nwant %+v", log.Entries, want)
	}
	if log.ID != "id-1" || log.CountedBy != "U-7" || !log.Timestamp.Equal(fixedNow) || log.VehicleID != "V-1" {
		t.Errorf("unexpected log header: %+v", log)
	}

	v, _ := e.Fleet().Get("V-1")
	if v.QuantityOf("P-001") != 3 || v.QuantityOf("P-002") != 2 {
		t.Errorf("expected counted quantities applied, got %+v", v.Items)
	}
	if v.QuantityOf("P-003") != 7 {
		t.Errorf("expected omitted item unchanged at 7, got %d", v.QuantityOf("P-003"))
	}
	if !reflect.DeepEqual(catalogBefore, e.Catalog().List()) {
		t.Errorf("count must not touch the catalog")
	}
}

func TestSubmitCount_UnallocatedItemExpectsZero(t *testing.T) {
	e := newTestEngine(t, sampleItems(), sampleVehicles())

	log, err := e.SubmitCount("V-1", "U-1", []CountLine{{ItemID: "P-003", CountedQuantity: 2}})
	if err != nil {
		t.Fatalf("SubmitCount: %v", err)
	}
	if log.Entries[0].ExpectedQuantity != 0 || log.Entries[0].Variance != 2 {
		t.Errorf("unexpected entry: %+v", log.Entries[0])
	}
}

func TestSubmitCount_DanglingAllocationCanBeCounted(t *testing.T) {
	vehicles := []models.VehicleInventory{
		{VehicleID: "V-1", Items: []models.AllocationLine{{ItemID: "GONE", Quantity: 5}}},
	}
	e := newTestEngine(t, sampleItems(), vehicles)

	log, err := e.SubmitCount("V-1", "U-1", []CountLine{{ItemID: "GONE", CountedQuantity: 0}})
	if err != nil {
		t.Fatalf("SubmitCount: %v", err)
	}
	if log.Entries[0].Variance != -5 {
		t.Errorf("expected variance -5, got %d", log.Entries[0].Variance)
	}
}

func TestSubmitCount_Validation(t *testing.T) {
	tests := []struct {
		name      string
		vehicleID string
		countedBy string
		counts    []CountLine
		want      error
	}{
		{name: "unknown vehicle", vehicleID: "V-404", countedBy: "U-1", counts: []CountLine{{ItemID: "P-001"}}, want: ErrNotFound},
		{name: "no counter", vehicleID: "V-1", countedBy: " ", counts: []CountLine{{ItemID: "P-001"}}, want: ErrInvalidRequest},
		{name: "empty", vehicleID: "V-1", countedBy: "U-1", want: ErrInvalidRequest},
		{name: "duplicate", vehicleID: "V-1", countedBy: "U-1", counts: []CountLine{{ItemID: "P-001"}, {ItemID: "P-001"}}, want: ErrInvalidRequest},
		{name: "negative", vehicleID: "V-1", countedBy: "U-1", counts: []CountLine{{ItemID: "P-001", CountedQuantity: -1}}, want: ErrInvalidQuantity},
		{name: "unknown item", vehicleID: "V-1", countedBy: "U-1", counts: []CountLine{{ItemID: "P-001", CountedQuantity: 1}, {ItemID: "X", CountedQuantity: 1}}, want: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, sampleItems(), sampleVehicles())
			before := e.Snapshot()

			_, err := e.SubmitCount(tt.vehicleID, tt.countedBy, tt.counts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !reflect.DeepEqual(before, e.Snapshot()) {
				t.Errorf("stores changed after rejected count")
			}
		})
	}
}

func TestWorkedExample(t *testing.T) {
	e := newTestEngine(t,
		[]models.InventoryItem{{ID: "P-001", Name: "Fuse", Quantity: 10, MinThreshold: 5}},
		[]models.VehicleInventory{{VehicleID: "V-1"}},
	)

	if _, err := e.Transfer("V-1", []TransferLine{{ItemID: "P-001", Quantity: 4}}); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	item, _ := e.Catalog().Get("P-001")
	if item.Quantity != 6 || item.IsLowStock() {
		t.Errorf("expected P-001 at 6 and not low, got %+v", item)
	}
	v, _ := e.Fleet().Get("V-1")
	if !reflect.DeepEqual(v.Items, []models.AllocationLine{{ItemID: "P-001", Quantity: 4}}) {
		t.Errorf("unexpected allocation: %+v", v.Items)
	}

	log, err := e.SubmitCount("V-1", "U-1", []CountLine{{ItemID: "P-001", CountedQuantity: 3}})
	if err != nil {
		t.Fatalf("SubmitCount: %v", err)
	}
	want := models.CountEntry{ItemID: "P-001", ExpectedQuantity: 4, CountedQuantity: 3, Variance: -1}
	if len(log.Entries) != 1 || log.Entries[0] != want {
		t.Errorf("unexpected log entries: %+v", log.Entries)
	}
	v, _ = e.Fleet().Get("V-1")
	if v.QuantityOf("P-001") != 3 {
		t.Errorf("expected allocation 3, got %d", v.QuantityOf("P-001"))
	}
}
