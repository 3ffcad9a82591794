package models

import (
	"strings"
	"time"
)

// StockOutReason enumerates why units left the inventory.
type StockOutReason string

const (
	ReasonSale        StockOutReason = "sale"
	ReasonExchange    StockOutReason = "exchange"
	ReasonDisposal    StockOutReason = "disposal"
	ReasonInternalUse StockOutReason = "internal_use"
	ReasonReturn      StockOutReason = "return"
)

// ParseStockOutReason accepts the canonical value, or the spaced form "internal use".
func ParseStockOutReason(value string) (StockOutReason, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
	switch StockOutReason(normalized) {
	case ReasonSale, ReasonExchange, ReasonDisposal, ReasonInternalUse, ReasonReturn:
		return StockOutReason(normalized), true
	default:
		return "", false
	}
}

// StockOut records a removal of inventory. ProductName is a snapshot taken at
// recording time and is never refreshed from the catalog.
type StockOut struct {
	ID          string         `json:"id"`
	ProductID   string         `json:"productId"`
	ProductName string         `json:"productName"`
	Quantity    int            `json:"quantity"`
	Reason      StockOutReason `json:"reason"`
	Date        time.Time      `json:"date"`
	Responsible string         `json:"responsible"`
}

// StockOutInput is the payload accepted by the stock-out recorder.
type StockOutInput struct {
	ProductID   string    `json:"productId"`
	Quantity    int       `json:"quantity"`
	Reason      string    `json:"reason"`
	Date        time.Time `json:"date"`
	Responsible string    `json:"responsible"`
}

// StockOutResult pairs the written record with the adjustments the ledger refused.
type StockOutResult struct {
	StockOut   StockOut    `json:"stockOut"`
	Rejections []Rejection `json:"rejections,omitempty"`
}
