package bomupload

import (
	"errors"
	"log"
	"math"
	"strings"

	"boutique-backend/internal/inventory"
	"boutique-backend/internal/models"
)

const (
	defaultCategory    = "General"
	defaultTaxRate     = 12
	defaultLowStock    = 5
	sellingPriceMarkup = 1.4
)

type CommitResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// CommitRows applies reviewed rows to the catalog, one row at a time.
// Updates merge stock into the matching (size, color) variant or
// append a new one; stock increments are additive, so committing the
// same rows twice doubles them. A stale matched id skips the row
// silently. There is no rollback; rows applied before a failure stay
// applied.
func CommitRows(rows []ParsedRow, catalog inventory.Catalog) (CommitResult, error) {
	var result CommitResult

	for _, row := range rows {
		switch row.Action {
		case ActionIgnore:
			result.Skipped++

		case ActionUpdate:
			if row.MatchedItemID == nil {
				result.Skipped++
				continue
			}
			item, err := catalog.ItemByID(*row.MatchedItemID)
			if errors.Is(err, inventory.ErrItemNotFound) {
				// Item vanished between match and commit.
				log.Printf("bom commit: matched item %d no longer exists, skipping %q", *row.MatchedItemID, row.Name)
				result.Skipped++
				continue
			}
			if err != nil {
				return result, err
			}

			mergeVariant(item, row)
			if err := catalog.SaveItem(item); err != nil {
				return result, err
			}
			result.Updated++

		case ActionCreate:
			item := newItemFromRow(row)
			if err := catalog.CreateItem(item); err != nil {
				return result, err
			}
			result.Created++

		default:
			result.Skipped++
		}
	}
	return result, nil
}

// mergeVariant increments stock on the first variant with the same
// (size, color) pair, or appends a new variant when none exists.
func mergeVariant(item *models.Item, row ParsedRow) {
	for i := range item.Variants {
		v := &item.Variants[i]
		if strings.EqualFold(v.Size, row.Size) && strings.EqualFold(v.Color, row.Color) {
			v.Stock += row.Quantity
			return
		}
	}
	item.Variants = append(item.Variants, models.ItemVariant{
		ItemID: item.ID,
		Size:   row.Size,
		Color:  row.Color,
		Stock:  row.Quantity,
	})
}

func newItemFromRow(row ParsedRow) *models.Item {
	sellingPrice := 0.0
	if row.UnitCost > 0 {
		sellingPrice = math.Round(row.UnitCost * sellingPriceMarkup)
	}

	return &models.Item{
		Name:              row.Name,
		SKU:               row.SKU,
		Category:          defaultCategory,
		HSN:               row.HSN,
		Vendor:            row.Vendor,
		PurchasePrice:     row.UnitCost,
		SellingPrice:      sellingPrice,
		TaxRate:           defaultTaxRate,
		LowStockThreshold: defaultLowStock,
		Variants: []models.ItemVariant{
			{Size: row.Size, Color: row.Color, Stock: row.Quantity},
		},
	}
}
