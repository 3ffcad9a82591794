package models

import "time"

// DailyDigest is the periodic stock and sales summary pushed to the shop owner.
type DailyDigest struct {
	Date          time.Time                 `json:"date"`
	Inventory     InventorySummary          `json:"inventory"`
	LowStock      []string                  `json:"lowStock"`
	AgedStock     []string                  `json:"agedStock"`
	ReceiptCount  int                       `json:"receiptCount"`
	SalesAmount   float64                   `json:"salesAmount"`
	SalesByMethod map[PaymentMethod]float64 `json:"salesByMethod"`
}
