package models

import "time"

// DailySummary: per-day sales rollup, upserted by billing on every
// invoice so the dashboard reads a precomputed row instead of scanning
// invoices.
type DailySummary struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Date          time.Time `gorm:"uniqueIndex;not null" json:"date"` // local midnight
	TotalSales    float64   `gorm:"not null;default:0" json:"total_sales"`
	TotalTax      float64   `gorm:"not null;default:0" json:"total_tax"`
	CashCollected float64   `gorm:"not null;default:0" json:"cash_collected"`
	Profit        float64   `gorm:"not null;default:0" json:"profit"`
	BillCount     int       `gorm:"not null;default:0" json:"bill_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
