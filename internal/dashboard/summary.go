package dashboard

import (
	"errors"
	"sort"
	"time"

	"boutique-backend/internal/database"
	"boutique-backend/internal/inventory"
	"boutique-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type TopSeller struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

type SummaryResponse struct {
	Date           string              `json:"date"`
	Today          models.DailySummary `json:"today"`
	TopSellers     []TopSeller         `json:"top_sellers"`
	RecentInvoices []models.Invoice    `json:"recent_invoices"`
	LowStockItems  []models.Item       `json:"low_stock_items"`
}

// GET /api/dashboard/summary
// The three reads are independent; they run concurrently and the
// aggregation happens once all of them land.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := localMidnight(time.Now())

		var (
			summary  models.DailySummary
			invoices []models.Invoice
			lowStock []models.Item
		)

		var g errgroup.Group
		g.Go(func() error {
			err := database.DB.Where("date = ?", day).First(&summary).Error
			return ignoreMissingSummary(err)
		})
		g.Go(func() error {
			return database.DB.Preload("Items").
				Where("created_at >= ?", day).
				Order("created_at asc").
				Find(&invoices).Error
		})
		g.Go(func() error {
			var err error
			lowStock, err = inventory.NewGormCatalog(database.DB).LowStock()
			return err
		})
		if err := g.Wait(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load dashboard data")
		}

		return c.JSON(SummaryResponse{
			Date:           day.Format("2006-01-02"),
			Today:          summary,
			TopSellers:     TopSellers(invoices, 5),
			RecentInvoices: recentInvoices(invoices, 5),
			LowStockItems:  lowStock,
		})
	}
}

// TopSellers sums line quantities per item name across the given
// invoices and returns the top n. The sort is stable, so names with
// equal totals keep their first-encounter order.
func TopSellers(invoices []models.Invoice, n int) []TopSeller {
	totals := make(map[string]int)
	var order []string

	for _, invoice := range invoices {
		for _, line := range invoice.Items {
			if _, seen := totals[line.ItemName]; !seen {
				order = append(order, line.ItemName)
			}
			totals[line.ItemName] += line.Quantity
		}
	}

	sellers := make([]TopSeller, 0, len(order))
	for _, name := range order {
		sellers = append(sellers, TopSeller{ItemName: name, Quantity: totals[name]})
	}
	sort.SliceStable(sellers, func(i, j int) bool {
		return sellers[i].Quantity > sellers[j].Quantity
	})

	if len(sellers) > n {
		sellers = sellers[:n]
	}
	return sellers
}

func recentInvoices(invoices []models.Invoice, n int) []models.Invoice {
	// invoices arrive oldest first; the most recent are at the tail.
	recent := make([]models.Invoice, 0, n)
	for i := len(invoices) - 1; i >= 0 && len(recent) < n; i-- {
		recent = append(recent, invoices[i])
	}
	return recent
}

// ignoreMissingSummary treats a missing daily summary row as zero
// sales for the day. Any other error is a real failure and propagates.
func ignoreMissingSummary(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
