package billing

import (
	"errors"
	"log"
	"strings"
	"time"

	"boutique-backend/internal/database"
	"boutique-backend/internal/inventory"
	"boutique-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceLineRequest struct {
	ItemID    *uint   `json:"item_id"`
	ItemName  string  `json:"item_name"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	CustomerName string               `json:"customer_name"`
	PaymentMode  models.PaymentMode   `json:"payment_mode"`
	Items        []InvoiceLineRequest `json:"items"`
}

// POST /api/invoices
func CreateInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if len(body.Items) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invoice needs at least one item")
		}

		switch body.PaymentMode {
		case models.PaymentCash, models.PaymentCard, models.PaymentUPI:
		case "":
			body.PaymentMode = models.PaymentCash
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Payment mode must be cash, card or upi")
		}

		invoice := models.Invoice{
			Number:       generateInvoiceNumber(),
			CustomerName: strings.TrimSpace(body.CustomerName),
			PaymentMode:  body.PaymentMode,
		}

		profit := 0.0
		for _, line := range body.Items {
			if strings.TrimSpace(line.ItemName) == "" || line.Quantity < 1 {
				return fiber.NewError(fiber.StatusBadRequest, "Every line needs an item name and a quantity of at least 1")
			}

			lineTotal := float64(line.Quantity) * line.UnitPrice
			item := models.InvoiceItem{
				ItemID:    line.ItemID,
				ItemName:  strings.TrimSpace(line.ItemName),
				Size:      strings.TrimSpace(line.Size),
				Color:     strings.TrimSpace(line.Color),
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Total:     lineTotal,
			}
			invoice.Items = append(invoice.Items, item)
			invoice.Subtotal += lineTotal

			if line.ItemID != nil {
				var catalogItem models.Item
				if err := database.DB.First(&catalogItem, "id = ?", *line.ItemID).Error; err == nil {
					invoice.TaxAmount += lineTotal * catalogItem.TaxRate / 100
					profit += float64(line.Quantity) * (line.UnitPrice - catalogItem.PurchasePrice)
				}
			}
		}
		invoice.Total = invoice.Subtotal + invoice.TaxAmount

		if err := database.DB.Create(&invoice).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create invoice")
		}

		// Stock only moves once the invoice row exists; a failed insert
		// must not leave phantom deductions behind.
		applyStockDeductions(inventory.NewGormCatalog(database.DB), invoice.Items)

		if err := applyToDailySummary(&invoice, profit); err != nil {
			// The invoice exists; the summary can be rebuilt later.
			log.Printf("billing: daily summary update failed for %s: %v", invoice.Number, err)
		}

		return c.Status(fiber.StatusCreated).JSON(invoice)
	}
}

// applyStockDeductions decrements the matching (size, color) variant
// for every line that references a catalog item, best-effort. Anonymous
// lines and unknown variants leave stock alone.
func applyStockDeductions(catalog inventory.Catalog, lines []models.InvoiceItem) {
	for _, line := range lines {
		if line.ItemID == nil {
			continue
		}
		item, err := catalog.ItemByID(*line.ItemID)
		if err != nil {
			continue
		}
		for i := range item.Variants {
			v := &item.Variants[i]
			if strings.EqualFold(v.Size, line.Size) && strings.EqualFold(v.Color, line.Color) {
				v.Stock -= line.Quantity
				if v.Stock < 0 {
					v.Stock = 0
				}
				if err := catalog.SaveItem(item); err != nil {
					log.Printf("billing: stock deduction failed for item %d: %v", item.ID, err)
				}
				break
			}
		}
	}
}

func applyToDailySummary(invoice *models.Invoice, profit float64) error {
	day := localMidnight(time.Now())

	var summary models.DailySummary
	err := database.DB.Where("date = ?", day).First(&summary).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		summary = models.DailySummary{Date: day}
	} else if err != nil {
		return err
	}

	summary.TotalSales += invoice.Total
	summary.TotalTax += invoice.TaxAmount
	summary.Profit += profit
	summary.BillCount++
	if invoice.PaymentMode == models.PaymentCash {
		summary.CashCollected += invoice.Total
	}

	return database.DB.Save(&summary).Error
}

func localMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func generateInvoiceNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return "INV-" + time.Now().Format("20060102") + "-" + suffix
}

// GET /api/invoices?from=2026-08-01&to=2026-08-28
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Invoice{}).Preload("Items")

		if from := c.Query("from"); from != "" {
			if t, err := time.ParseInLocation("2006-01-02", from, time.Local); err == nil {
				dbq = dbq.Where("created_at >= ?", t)
			}
		}
		if to := c.Query("to"); to != "" {
			if t, err := time.ParseInLocation("2006-01-02", to, time.Local); err == nil {
				dbq = dbq.Where("created_at < ?", t.AddDate(0, 0, 1))
			}
		}

		var invoices []models.Invoice
		if err := dbq.Order("created_at desc").Find(&invoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list invoices")
		}
		return c.JSON(invoices)
	}
}

// GET /api/invoices/:id
func GetInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var invoice models.Invoice
		if err := database.DB.Preload("Items").First(&invoice, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invoice not found")
		}
		return c.JSON(invoice)
	}
}
