package bomupload

import (
	"testing"

	"boutique-backend/internal/inventory"
	"boutique-backend/internal/models"
)

func seededCatalog(t *testing.T, items ...models.Item) *inventory.MemoryCatalog {
	t.Helper()
	catalog := inventory.NewMemoryCatalog()
	for i := range items {
		if err := catalog.CreateItem(&items[i]); err != nil {
			t.Fatalf("seed item: %v", err)
		}
	}
	return catalog
}

func TestExactNameMatchIsCaseInsensitive(t *testing.T) {
	catalog := seededCatalog(t, models.Item{Name: "Blue Jeans", SKU: "BLU-32-AAAA"})

	rows, err := MatchRows([]ParsedRow{{Name: "blue jeans", Quantity: 5, Action: ActionCreate}}, catalog)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}

	row := rows[0]
	if row.Action != ActionUpdate {
		t.Fatalf("expected action update, got %s", row.Action)
	}
	if row.MatchedItemID == nil || *row.MatchedItemID != 1 {
		t.Fatalf("expected matched item id 1, got %v", row.MatchedItemID)
	}
	if row.MatchedItemName != "Blue Jeans" {
		t.Fatalf("expected matched item name, got %q", row.MatchedItemName)
	}
}

func TestSimilarityMatchAboveThreshold(t *testing.T) {
	catalog := seededCatalog(t, models.Item{Name: "Blue Denim Jeans"})

	rows, err := MatchRows([]ParsedRow{{Name: "Blue Denim Jeans Slim", Action: ActionCreate}}, catalog)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if rows[0].Action != ActionUpdate {
		t.Fatalf("expected 3/4 word overlap to match, got %s", rows[0].Action)
	}
}

func TestSKUMatchRequiresBothSides(t *testing.T) {
	catalog := seededCatalog(t,
		models.Item{Name: "Completely Different", SKU: "ZBS-32-XY"},
		models.Item{Name: "Unrelated Thing", SKU: ""},
	)

	rows, err := MatchRows([]ParsedRow{
		{Name: "Zari Border Saree", SKU: "zbs-32-xy", Action: ActionCreate},
		{Name: "Woolen Muffler", SKU: "", Action: ActionCreate},
	}, catalog)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}

	if rows[0].Action != ActionUpdate || rows[0].MatchedItemID == nil || *rows[0].MatchedItemID != 1 {
		t.Fatalf("expected SKU match on first row, got %+v", rows[0])
	}
	if rows[1].Action != ActionCreate {
		t.Fatalf("expected empty SKUs not to match each other, got %s", rows[1].Action)
	}
}

func TestNoMatchLeavesRowAsCreate(t *testing.T) {
	catalog := seededCatalog(t, models.Item{Name: "Blue Jeans"})

	rows, err := MatchRows([]ParsedRow{{Name: "Woolen Scarf", Action: ActionCreate}}, catalog)
	if err != nil {
		t.Fatalf("match failed: %v", err)
	}
	if rows[0].Action != ActionCreate || rows[0].MatchedItemID != nil {
		t.Fatalf("expected unmatched row to stay create, got %+v", rows[0])
	}
}

func TestSimilarityIsSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"blue denim jeans", "denim"},
		{"cotton kurti", "cotton kurti red"},
		{"silk saree", "saree silk"},
		{"a b c", "x y z"},
		{"shirt", "s"},
	}
	for _, pair := range pairs {
		ab := nameSimilarity(pair[0], pair[1])
		ba := nameSimilarity(pair[1], pair[0])
		if ab != ba {
			t.Fatalf("similarity(%q, %q)=%v != similarity(%q, %q)=%v",
				pair[0], pair[1], ab, pair[1], pair[0], ba)
		}
	}
}

func TestSimilarityKnownOverMatchBias(t *testing.T) {
	// Single-word substring containment scores a full 1.0. This is the
	// documented bias of the heuristic, not a defect to correct.
	if score := nameSimilarity("s", "shirt"); score != 1.0 {
		t.Fatalf("expected over-match score 1.0, got %v", score)
	}
	if score := nameSimilarity("red kurti", "blue jeans"); score != 0 {
		t.Fatalf("expected disjoint names to score 0, got %v", score)
	}
}

func TestSimilarityScoreValues(t *testing.T) {
	// 3 of 4 words of the longer list overlap the shorter.
	if score := nameSimilarity("Blue Denim Jeans", "Blue Denim Jeans Slim"); score != 0.75 {
		t.Fatalf("expected 0.75, got %v", score)
	}
	// Exactly at the threshold must NOT match (rule is strictly greater).
	if similarityThreshold != 0.7 {
		t.Fatalf("expected threshold 0.7, got %v", similarityThreshold)
	}
}
