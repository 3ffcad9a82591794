package models

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced record does not exist in its collection.
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock indicates an adjustment would drive a quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// ValidationError reports the first invalid field of an input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// InsufficientStockError is returned when a removal exceeds the quantity on hand.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.ProductName, e.Requested, e.Available)
}

// Is lets callers match with errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// RejectionReason classifies a refused line adjustment.
type RejectionReason string

const (
	RejectedInsufficientStock RejectionReason = "insufficient_stock"
	RejectedUnknownProduct    RejectionReason = "unknown_product"
)

// Rejection describes one line whose stock adjustment was refused.
type Rejection struct {
	Line        int             `json:"line"`
	ProductID   string          `json:"productId,omitempty"`
	ProductName string          `json:"productName"`
	Requested   int             `json:"requested"`
	Available   int             `json:"available"`
	Reason      RejectionReason `json:"reason"`
}

// RejectionFromError converts a ledger adjustment error into a Rejection.
// It returns false when err is neither a stock shortfall nor a missing product.
func RejectionFromError(line int, productID, productName string, requested int, err error) (Rejection, bool) {
	var short *InsufficientStockError
	switch {
	case errors.As(err, &short):
		return Rejection{
			Line:        line,
			ProductID:   short.ProductID,
			ProductName: short.ProductName,
			Requested:   short.Requested,
			Available:   short.Available,
			Reason:      RejectedInsufficientStock,
		}, true
	case errors.Is(err, ErrNotFound):
		return Rejection{
			Line:        line,
			ProductID:   productID,
			ProductName: productName,
			Requested:   requested,
			Reason:      RejectedUnknownProduct,
		}, true
	default:
		return Rejection{}, false
	}
}

// RejectedError aborts a whole transaction when any line cannot be applied.
type RejectedError struct {
	Rejections []Rejection
}

func (e *RejectedError) Error() string {
	if len(e.Rejections) == 1 {
		r := e.Rejections[0]
		return fmt.Sprintf("transaction rejected: %s for %s", r.Reason, r.ProductName)
	}
	return fmt.Sprintf("transaction rejected: %d lines cannot be applied", len(e.Rejections))
}

// Is matches ErrInsufficientStock or ErrNotFound depending on the rejected lines.
func (e *RejectedError) Is(target error) bool {
	for _, r := range e.Rejections {
		if target == ErrInsufficientStock && r.Reason == RejectedInsufficientStock {
			return true
		}
		if target == ErrNotFound && r.Reason == RejectedUnknownProduct {
			return true
		}
	}
	return false
}
