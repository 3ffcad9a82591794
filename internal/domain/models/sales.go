package models

import (
	"strings"
	"time"
)

// PaymentMethod enumerates accepted payment forms.
type PaymentMethod string

const (
	PaymentCash            PaymentMethod = "cash"
	PaymentDebitCard       PaymentMethod = "debit_card"
	PaymentCreditCard      PaymentMethod = "credit_card"
	PaymentInstantTransfer PaymentMethod = "instant_transfer"
)

// ParsePaymentMethod resolves a payment method; "pix" maps to instant transfer.
func ParsePaymentMethod(value string) (PaymentMethod, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
	switch PaymentMethod(normalized) {
	case PaymentCash, PaymentDebitCard, PaymentCreditCard, PaymentInstantTransfer:
		return PaymentMethod(normalized), true
	}
	if normalized == "pix" {
		return PaymentInstantTransfer, true
	}
	return "", false
}

// SalesItem is one receipt line. ProductName and UnitPrice are snapshots.
type SalesItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId,omitempty"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// SalesReceipt is the historical record of a sale.
type SalesReceipt struct {
	ID            string        `json:"id"`
	ClientName    string        `json:"clientName"`
	Items         []SalesItem   `json:"items"`
	TotalValue    float64       `json:"totalValue"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	SaleDate      time.Time     `json:"saleDate"`
}

// SalesItemInput describes a requested line; ProductID wins over ProductName.
type SalesItemInput struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// SalesReceiptInput is the payload accepted by the sales recorder.
type SalesReceiptInput struct {
	ClientName    string           `json:"clientName"`
	Items         []SalesItemInput `json:"items"`
	PaymentMethod string           `json:"paymentMethod"`
	SaleDate      time.Time        `json:"saleDate"`
}

// SalesReceiptResult pairs the written receipt with refused line adjustments.
type SalesReceiptResult struct {
	Receipt    SalesReceipt `json:"receipt"`
	Rejections []Rejection  `json:"rejections,omitempty"`
}

// AdjustPolicy selects how multi-line stock adjustments are applied.
type AdjustPolicy string

const (
	// AdjustBestEffort writes the record even when some lines are refused.
	AdjustBestEffort AdjustPolicy = "best_effort"
	// AdjustAllOrNothing refuses the whole record when any line is refused.
	AdjustAllOrNothing AdjustPolicy = "all_or_nothing"
)

// Valid reports whether p is a known policy.
func (p AdjustPolicy) Valid() bool {
	return p == AdjustBestEffort || p == AdjustAllOrNothing
}
