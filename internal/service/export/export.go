package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
)

const productsSheet = "Products"

var productHeader = []interface{}{
	"id", "name", "category", "cost_price", "sale_price",
	"profit_margin", "quantity", "entry_date", "days_in_stock", "low_stock", "aged",
}

// FileName returns the download name for an export taken at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("products_%s.xlsx", now.Format("20060102_150405"))
}

// ProductsWorkbook writes the products, classified at now, into an xlsx workbook.
func ProductsWorkbook(products []models.Product, now time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), productsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(productsSheet, "A1", &productHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, p := range products {
		health := inventory.Classify(p, now)
		row := []interface{}{
			p.ID,
			p.Name,
			string(p.Category),
			p.CostPrice,
			p.SalePrice,
			inventory.ProfitMargin(p.CostPrice, p.SalePrice),
			p.Quantity,
			p.EntryDate.Format("2006-01-02"),
			health.DaysInStock,
			health.LowStock,
			health.Aged,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(productsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
