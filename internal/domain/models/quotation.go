package models

import (
	"strings"
	"time"
)

// QuotationStatus tracks a supplier price request.
type QuotationStatus string

const (
	QuotationOpen           QuotationStatus = "open"
	QuotationAwaitingClient QuotationStatus = "awaiting_client"
	QuotationPartAcquired   QuotationStatus = "part_acquired"
	QuotationCancelled      QuotationStatus = "cancelled"
)

// legacy labels found in older stored quotations, keyed after normalization.
var quotationStatusAliases = map[string]QuotationStatus{
	"em_aberto":          QuotationOpen,
	"aguardando_cliente": QuotationAwaitingClient,
	"peça_adquirida":     QuotationPartAcquired,
	"peca_adquirida":     QuotationPartAcquired,
	"cancelada":          QuotationCancelled,
	"cancelado":          QuotationCancelled,
}

// ParseQuotationStatus resolves a status or a legacy label; empty input yields open.
func ParseQuotationStatus(value string) (QuotationStatus, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), " ", "_")
	switch s := QuotationStatus(normalized); s {
	case "":
		return QuotationOpen, true
	case QuotationOpen, QuotationAwaitingClient, QuotationPartAcquired, QuotationCancelled:
		return s, true
	}
	s, ok := quotationStatusAliases[normalized]
	return s, ok
}

// Supplier is one offer received for a quotation.
type Supplier struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	QuotedPrice  float64 `json:"quotedPrice"`
	DeliveryTime string  `json:"deliveryTime"`
	Observations string  `json:"observations"`
}

// Quotation is a price request sent to suppliers for a client's part.
type Quotation struct {
	ID          string          `json:"id"`
	ClientName  string          `json:"clientName"`
	DeviceModel string          `json:"deviceModel"`
	PartType    string          `json:"partType"`
	RequestDate time.Time       `json:"requestDate"`
	Status      QuotationStatus `json:"status"`
	Suppliers   []Supplier      `json:"suppliers"`
}

// SupplierInput describes one supplier offer.
type SupplierInput struct {
	Name         string  `json:"name"`
	QuotedPrice  float64 `json:"quotedPrice"`
	DeliveryTime string  `json:"deliveryTime"`
	Observations string  `json:"observations"`
}

// QuotationInput is the payload accepted by the quotation recorder.
type QuotationInput struct {
	ClientName  string          `json:"clientName"`
	DeviceModel string          `json:"deviceModel"`
	PartType    string          `json:"partType"`
	RequestDate time.Time       `json:"requestDate"`
	Status      string          `json:"status"`
	Suppliers   []SupplierInput `json:"suppliers"`
}
