package export

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

func TestProductsWorkbook(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	products := []models.Product{
		{ID: "p1", Name: "Cable", Category: models.CategoryUSBCables, CostPrice: 10, SalePrice: 20, Quantity: 2, EntryDate: now.AddDate(0, 0, -91)},
		{ID: "p2", Name: "Case", Category: models.CategoryCases, CostPrice: 5, SalePrice: 6, Quantity: 30, EntryDate: now},
	}

	buf, err := ProductsWorkbook(products, now)
	if err != nil {
		t.Fatalf("ProductsWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(productsSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	tests := []struct {
		cell string
		want string
	}{
		{"A1", "id"},
		{"B2", "Cable"},
		{"C2", "USB Cables"},
		{"F2", "100"},
		{"I2", "91"},
		{"J2", "TRUE"},
		{"K2", "TRUE"},
		{"B3", "Case"},
		{"J3", "FALSE"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(productsSheet, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestFileName(t *testing.T) {
	got := FileName(time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC))
	if got != "products_20250701_093000.xlsx" {
		t.Errorf("FileName() = %q", got)
	}
}
