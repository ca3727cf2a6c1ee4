package models

import "time"

// Item: a catalog entry. Stock is carried on the variants, one per
// (size, color) combination.
type Item struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"size:150;not null;index" json:"name"`
	SKU               string    `gorm:"size:50;index" json:"sku"`
	Category          string    `gorm:"size:100" json:"category"`
	HSN               string    `gorm:"size:20" json:"hsn"`
	Vendor            string    `gorm:"size:100" json:"vendor"`
	PurchasePrice     float64   `gorm:"not null;default:0" json:"purchase_price"`
	SellingPrice      float64   `gorm:"not null;default:0" json:"selling_price"`
	TaxRate           float64   `gorm:"not null;default:0" json:"tax_rate"` // GST percent
	LowStockThreshold int       `gorm:"not null;default:5" json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Variants []ItemVariant `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"variants"`
}

// ItemVariant: one size/color stock-keeping unit within an item.
type ItemVariant struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	ItemID uint   `gorm:"index;not null" json:"item_id"`
	Size   string `gorm:"size:20" json:"size"`
	Color  string `gorm:"size:30" json:"color"`
	Stock  int    `gorm:"not null;default:0" json:"stock"`
}

// TotalStock: sum of stock across all variants.
func (i *Item) TotalStock() int {
	total := 0
	for _, v := range i.Variants {
		total += v.Stock
	}
	return total
}
