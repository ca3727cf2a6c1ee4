package inventory

import (
	"testing"

	"boutique-backend/internal/models"
)

func TestMemoryCatalogCreateAssignsIDs(t *testing.T) {
	catalog := NewMemoryCatalog()

	first := models.Item{Name: "Blue Jeans", Variants: []models.ItemVariant{{Size: "32", Stock: 3}}}
	second := models.Item{Name: "Cotton Kurti"}
	if err := catalog.CreateItem(&first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := catalog.CreateItem(&second); err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected sequential ids, got %d and %d", first.ID, second.ID)
	}
	if first.Variants[0].ItemID != first.ID {
		t.Fatalf("expected variant bound to item, got %d", first.Variants[0].ItemID)
	}
}

func TestMemoryCatalogItemByIDCopiesVariants(t *testing.T) {
	catalog := NewMemoryCatalog()
	seed := models.Item{Name: "Blue Jeans", Variants: []models.ItemVariant{{Size: "32", Stock: 3}}}
	if err := catalog.CreateItem(&seed); err != nil {
		t.Fatalf("create: %v", err)
	}

	item, err := catalog.ItemByID(seed.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	item.Variants[0].Stock = 99

	again, _ := catalog.ItemByID(seed.ID)
	if again.Variants[0].Stock != 3 {
		t.Fatalf("expected stored stock untouched, got %d", again.Variants[0].Stock)
	}
}

func TestMemoryCatalogUnknownID(t *testing.T) {
	catalog := NewMemoryCatalog()
	if _, err := catalog.ItemByID(42); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if err := catalog.SaveItem(&models.Item{ID: 42}); err != ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound on save, got %v", err)
	}
}

func TestLowStockIsInclusiveOfThreshold(t *testing.T) {
	catalog := NewMemoryCatalog()
	items := []models.Item{
		{Name: "At Threshold", LowStockThreshold: 5, Variants: []models.ItemVariant{{Stock: 2}, {Stock: 3}}},
		{Name: "Above Threshold", LowStockThreshold: 5, Variants: []models.ItemVariant{{Stock: 6}}},
		{Name: "Empty", LowStockThreshold: 5},
	}
	for i := range items {
		if err := catalog.CreateItem(&items[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	low, err := catalog.LowStock()
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(low) != 2 {
		t.Fatalf("expected two low-stock items, got %d", len(low))
	}
	if low[0].Name != "At Threshold" || low[1].Name != "Empty" {
		t.Fatalf("unexpected low-stock set: %+v", low)
	}
}

func TestTotalStockSumsVariants(t *testing.T) {
	item := models.Item{Variants: []models.ItemVariant{{Stock: 2}, {Stock: 5}, {Stock: 0}}}
	if got := item.TotalStock(); got != 7 {
		t.Fatalf("expected total stock 7, got %d", got)
	}
}
