package models

import (
	"strings"
	"time"
)

// BudgetStatus tracks the client's answer to a budget. It is informational only.
type BudgetStatus string

const (
	BudgetPending  BudgetStatus = "pending"
	BudgetApproved BudgetStatus = "approved"
	BudgetRejected BudgetStatus = "rejected"
)

// legacy labels found in older stored budgets.
var budgetStatusAliases = map[string]BudgetStatus{
	"pendente": BudgetPending,
	"aprovado": BudgetApproved,
	"recusado": BudgetRejected,
}

// ParseBudgetStatus resolves a status or a legacy label; empty input yields pending.
func ParseBudgetStatus(value string) (BudgetStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch s := BudgetStatus(normalized); s {
	case "":
		return BudgetPending, true
	case BudgetPending, BudgetApproved, BudgetRejected:
		return s, true
	}
	s, ok := budgetStatusAliases[normalized]
	return s, ok
}

// BudgetItem is a quoted line for a client.
type BudgetItem struct {
	ID          string  `json:"id"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	TotalPrice  float64 `json:"totalPrice"`
}

// Budget is a price quote handed to a client.
type Budget struct {
	ID         string       `json:"id"`
	ClientName string       `json:"clientName"`
	Contact    string       `json:"contact"`
	Items      []BudgetItem `json:"items"`
	TotalValue float64      `json:"totalValue"`
	ValidUntil string       `json:"validUntil"`
	Status     BudgetStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// BudgetItemInput describes one budget line.
type BudgetItemInput struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// BudgetInput is the payload accepted by the budget recorder.
type BudgetInput struct {
	ClientName string            `json:"clientName"`
	Contact    string            `json:"contact"`
	Items      []BudgetItemInput `json:"items"`
	ValidUntil string            `json:"validUntil"`
	Status     string            `json:"status"`
}
