package models

import "time"

type PaymentMode string

const (
	PaymentCash PaymentMode = "cash"
	PaymentCard PaymentMode = "card"
	PaymentUPI  PaymentMode = "upi"
)

type Invoice struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Number       string      `gorm:"size:30;uniqueIndex;not null" json:"number"`
	CustomerName string      `gorm:"size:100" json:"customer_name"`
	Subtotal     float64     `gorm:"not null" json:"subtotal"`
	TaxAmount    float64     `gorm:"not null" json:"tax_amount"`
	Total        float64     `gorm:"not null" json:"total"`
	PaymentMode  PaymentMode `gorm:"size:10;not null;default:cash" json:"payment_mode"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
}

// InvoiceItem: one sold line. ItemName is denormalized so the invoice
// stays readable after the catalog entry changes or goes away.
type InvoiceItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"index;not null" json:"invoice_id"`
	ItemID    *uint   `gorm:"index" json:"item_id"`
	ItemName  string  `gorm:"size:150;not null" json:"item_name"`
	Size      string  `gorm:"size:20" json:"size"`
	Color     string  `gorm:"size:30" json:"color"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	Total     float64 `gorm:"not null" json:"total"`
}
