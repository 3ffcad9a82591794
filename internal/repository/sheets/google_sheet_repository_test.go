package sheets

import (
	"testing"
	"time"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

func TestReceiptRows(t *testing.T) {
	receipt := models.SalesReceipt{
		ID:            "r1",
		ClientName:    "Maria",
		PaymentMethod: models.PaymentCash,
		SaleDate:      time.Date(2025, 4, 3, 18, 30, 0, 0, time.UTC),
		TotalValue:    45,
		Items: []models.SalesItem{
			{ProductName: "Case", Quantity: 1, UnitPrice: 25, TotalPrice: 25},
			{ProductName: "Glass", Quantity: 2, UnitPrice: 10, TotalPrice: 20},
		},
	}
	rows := receiptRows(receipt)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0] != "2025-04-03" || rows[1][3] != "Glass" || rows[1][4] != 2 || rows[1][8] != 45.0 {
		t.Errorf("rows = %v", rows)
	}
	if len(receiptRows(models.SalesReceipt{})) != 0 {
		t.Error("empty receipt produced rows")
	}
}

func TestStockOutRow(t *testing.T) {
	row := stockOutRow(models.StockOut{
		ID: "s1", ProductID: "p1", ProductName: "Cable", Quantity: 3,
		Reason: models.ReasonDisposal, Date: time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), Responsible: "Ana",
	})
	want := []interface{}{"2025-04-03", "s1", "p1", "Cable", 3, "disposal", "Ana"}
	if len(row) != len(want) {
		t.Fatalf("row = %v", row)
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, row[i], want[i])
		}
	}
}
