package inventory

import (
	"strings"

	"boutique-backend/internal/database"
	"boutique-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type VariantRequest struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	Stock int    `json:"stock"`
}

type CreateItemRequest struct {
	Name              string           `json:"name"`
	SKU               string           `json:"sku"`
	Category          string           `json:"category"`
	HSN               string           `json:"hsn"`
	Vendor            string           `json:"vendor"`
	PurchasePrice     float64          `json:"purchase_price"`
	SellingPrice      float64          `json:"selling_price"`
	TaxRate           float64          `json:"tax_rate"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Variants          []VariantRequest `json:"variants"`
}

type UpdateItemRequest struct {
	Name              *string  `json:"name"`
	SKU               *string  `json:"sku"`
	Category          *string  `json:"category"`
	HSN               *string  `json:"hsn"`
	Vendor            *string  `json:"vendor"`
	PurchasePrice     *float64 `json:"purchase_price"`
	SellingPrice      *float64 `json:"selling_price"`
	TaxRate           *float64 `json:"tax_rate"`
	LowStockThreshold *int     `json:"low_stock_threshold"`
}

// GET /api/items?q=jeans&category=Apparel
func ListItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Item{}).Preload("Variants")

		if q := strings.TrimSpace(c.Query("q")); q != "" {
			dbq = dbq.Where("name ILIKE ? OR sku ILIKE ?", "%"+q+"%", "%"+q+"%")
		}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			dbq = dbq.Where("category = ?", category)
		}

		var items []models.Item
		if err := dbq.Order("name asc").Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list items")
		}
		return c.JSON(items)
	}
}

// GET /api/items/low-stock
func LowStockItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		catalog := NewGormCatalog(database.DB)
		items, err := catalog.LowStock()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list low stock items")
		}
		return c.JSON(items)
	}
}

// GET /api/items/:id
func GetItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.Item
		if err := database.DB.Preload("Variants").First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item not found")
		}
		return c.JSON(item)
	}
}

// POST /api/items
func CreateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}

		threshold := 5
		if body.LowStockThreshold != nil {
			threshold = *body.LowStockThreshold
		}

		item := models.Item{
			Name:              body.Name,
			SKU:               strings.TrimSpace(body.SKU),
			Category:          strings.TrimSpace(body.Category),
			HSN:               strings.TrimSpace(body.HSN),
			Vendor:            strings.TrimSpace(body.Vendor),
			PurchasePrice:     body.PurchasePrice,
			SellingPrice:      body.SellingPrice,
			TaxRate:           body.TaxRate,
			LowStockThreshold: threshold,
		}
		for _, v := range body.Variants {
			item.Variants = append(item.Variants, models.ItemVariant{
				Size:  strings.TrimSpace(v.Size),
				Color: strings.TrimSpace(v.Color),
				Stock: v.Stock,
			})
		}

		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create item")
		}
		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/items/:id
func UpdateItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var item models.Item
		if err := database.DB.Preload("Variants").First(&item, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Item not found")
		}

		var body UpdateItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name cannot be empty")
			}
			item.Name = name
		}
		if body.SKU != nil {
			item.SKU = strings.TrimSpace(*body.SKU)
		}
		if body.Category != nil {
			item.Category = strings.TrimSpace(*body.Category)
		}
		if body.HSN != nil {
			item.HSN = strings.TrimSpace(*body.HSN)
		}
		if body.Vendor != nil {
			item.Vendor = strings.TrimSpace(*body.Vendor)
		}
		if body.PurchasePrice != nil {
			item.PurchasePrice = *body.PurchasePrice
		}
		if body.SellingPrice != nil {
			item.SellingPrice = *body.SellingPrice
		}
		if body.TaxRate != nil {
			item.TaxRate = *body.TaxRate
		}
		if body.LowStockThreshold != nil {
			item.LowStockThreshold = *body.LowStockThreshold
		}

		if err := database.DB.Save(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update item")
		}
		return c.JSON(item)
	}
}

// DELETE /api/items/:id
func DeleteItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := database.DB.Delete(&models.Item{}, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete item")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
