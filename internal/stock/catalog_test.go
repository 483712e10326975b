package stock

import (
	"errors"
	"testing"

	"github.com/mamadbah2/fleetstock/internal/domain/models"
)

func TestNewCatalog_RejectsDuplicatesAndNegatives(t *testing.T) {
	tests := []struct {
		name  string
		items []models.InventoryItem
		want  error
	}{
		{
			name: "duplicate id",
			items: []models.InventoryItem{
				{ID: "A", Name: "a", Quantity: 1},
				{ID: "A", Name: "again", Quantity: 2},
			},
			want: ErrInvalidRequest,
		},
		{
			name:  "negative quantity",
			items: []models.InventoryItem{{ID: "A", Name: "a", Quantity: -1}},
			want:  ErrInvalidQuantity,
		},
		{
			name:  "missing name",
			items: []models.InventoryItem{{ID: "A", Quantity: 1}},
			want:  ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.items)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCatalog_AdjustQuantity(t *testing.T) {
	catalog, err := NewCatalog(sampleItems())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	item, err := catalog.AdjustQuantity("P-001", -10)
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if item.Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", item.Quantity)
	}

	_, err = catalog.AdjustQuantity("P-001", -1)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	var shortage *ShortageError
	if !errors.As(err, &shortage) || shortage.ItemID != "P-001" || shortage.Available != 0 {
		t.Errorf("unexpected shortage detail: %+v", shortage)
	}

	item, err = catalog.AdjustQuantity("P-001", 7)
	if err != nil || item.Quantity != 7 {
		t.Errorf("expected quantity 7, got %d (%v)", item.Quantity, err)
	}

	if _, err := catalog.AdjustQuantity("nope", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_UpsertKeepsQuantityOfExistingItem(t *testing.T) {
	catalog, _ := NewCatalog(sampleItems())

	updated, err := catalog.Upsert(models.InventoryItem{ID: "P-001", Name: "Fuse 10A (blade)", Unit: "pcs", Quantity: 999, MinThreshold: 8})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if updated.Quantity != 10 {
		t.Errorf("expected quantity to stay 10, got %d", updated.Quantity)
	}

	got, _ := catalog.Get("P-001")
	if got.Name != "Fuse 10A (blade)" || got.MinThreshold != 8 || got.Quantity != 10 {
		t.Errorf("unexpected stored item: %+v", got)
	}

	if _, err := catalog.Upsert(models.InventoryItem{ID: "P-009", Name: "New", Quantity: 4}); err != nil {
		t.Fatalf("Upsert new: %v", err)
	}
	list := catalog.List()
	if list[len(list)-1].ID != "P-009" {
		t.Errorf("expected new item appended last, got %s", list[len(list)-1].ID)
	}

	if _, err := catalog.Upsert(models.InventoryItem{ID: "P-010", Name: "Bad", Quantity: -2}); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestCatalog_SetQuantityClampsToZero(t *testing.T) {
	catalog, _ := NewCatalog(sampleItems())

	item, err := catalog.SetQuantity("P-003", -5)
	if err != nil {
		t.Fatalf("SetQuantity: %v", err)
	}
	if item.Quantity != 0 {
		t.Errorf("expected clamp to 0, got %d", item.Quantity)
	}

	item, err = catalog.SetQuantity("P-003", 42)
	if err != nil || item.Quantity != 42 {
		t.Errorf("expected 42, got %d (%v)", item.Quantity, err)
	}
}

func TestCatalog_RemoveReindexes(t *testing.T) {
	catalog, _ := NewCatalog(sampleItems())

	if err := catalog.Remove("P-001"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := catalog.Get("P-001"); ok {
		t.Error("expected P-001 to be gone")
	}
	item, ok := catalog.Get("P-003")
	if !ok || item.Name != "Insulation tape" {
		t.Errorf("expected P-003 still reachable, got %+v", item)
	}
	if catalog.Len() != 2 {
		t.Errorf("expected 2 items, got %d", catalog.Len())
	}
	if err := catalog.Remove("P-001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
