package bomupload

import (
	"strings"

	"boutique-backend/internal/inventory"
	"boutique-backend/internal/models"
)

const similarityThreshold = 0.7

// MatchRows annotates parsed rows against the existing catalog. Per
// candidate item the rules run in order: exact case-insensitive name,
// word-overlap similarity above the threshold, exact case-insensitive
// SKU (both sides non-empty). The first item satisfying any rule wins
// and the row becomes an update; otherwise it stays a create.
func MatchRows(rows []ParsedRow, catalog inventory.Catalog) ([]ParsedRow, error) {
	items, err := catalog.Items()
	if err != nil {
		return nil, err
	}

	for i := range rows {
		if item := findMatch(&rows[i], items); item != nil {
			id := item.ID
			rows[i].Action = ActionUpdate
			rows[i].MatchedItemID = &id
			rows[i].MatchedItemName = item.Name
		}
	}
	return rows, nil
}

func findMatch(row *ParsedRow, items []models.Item) *models.Item {
	for i := range items {
		item := &items[i]
		if strings.EqualFold(strings.TrimSpace(row.Name), strings.TrimSpace(item.Name)) {
			return item
		}
		if nameSimilarity(row.Name, item.Name) > similarityThreshold {
			return item
		}
		if row.SKU != "" && item.SKU != "" && strings.EqualFold(row.SKU, item.SKU) {
			return item
		}
	}
	return nil
}

// nameSimilarity scores two names by word overlap: each word of the
// shorter list counts as matched when some word of the longer list
// contains it or is contained by it. Score is matched over the larger
// word count. Containment means very short names can over-match.
func nameSimilarity(a, b string) float64 {
	wordsA := strings.Fields(strings.ToLower(strings.TrimSpace(a)))
	wordsB := strings.Fields(strings.ToLower(strings.TrimSpace(b)))
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	shorter, longer := wordsA, wordsB
	if len(wordsB) < len(wordsA) {
		shorter, longer = wordsB, wordsA
	}

	matched := countOverlap(shorter, longer)
	if len(wordsA) == len(wordsB) {
		// Equal word counts make the shorter/longer choice arbitrary;
		// score both directions so the result stays symmetric.
		if alt := countOverlap(longer, shorter); alt > matched {
			matched = alt
		}
	}

	return float64(matched) / float64(len(longer))
}

func countOverlap(from, against []string) int {
	matched := 0
	for _, w := range from {
		for _, other := range against {
			if strings.Contains(other, w) || strings.Contains(w, other) {
				matched++
				break
			}
		}
	}
	return matched
}
