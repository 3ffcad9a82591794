package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const (
	receiptsRange  = "Receipts!A:I"
	stockOutsRange = "StockOuts!A:G"
	dateFormat     = "2006-01-02"
)

// Journal mirrors historical records into a spreadsheet the owner can browse.
type Journal interface {
	AppendReceipt(ctx context.Context, receipt models.SalesReceipt) error
	AppendStockOut(ctx context.Context, stockOut models.StockOut) error
}

// GoogleSheetJournal implements Journal using the official Google Sheets API.
type GoogleSheetJournal struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetJournal builds a Google Sheets backed journal.
func NewGoogleSheetJournal(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetJournal, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetJournal{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendReceipt writes one row per receipt line.
func (j *GoogleSheetJournal) AppendReceipt(ctx context.Context, receipt models.SalesReceipt) error {
	return j.appendRows(ctx, receiptsRange, receiptRows(receipt))
}

// AppendStockOut writes a single row for the stock-out.
func (j *GoogleSheetJournal) AppendStockOut(ctx context.Context, stockOut models.StockOut) error {
	return j.appendRows(ctx, stockOutsRange, [][]interface{}{stockOutRow(stockOut)})
}

func (j *GoogleSheetJournal) appendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	payload := &sheetsapi.ValueRange{Values: rows}

	call := j.service.Spreadsheets.Values.Append(j.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append rows into range %s: %w", sheetRange, err)
	}

	j.logger.Debug("rows appended to sheet", zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return nil
}

func receiptRows(receipt models.SalesReceipt) [][]interface{} {
	rows := make([][]interface{}, 0, len(receipt.Items))
	for _, item := range receipt.Items {
		rows = append(rows, []interface{}{
			receipt.SaleDate.Format(dateFormat),
			receipt.ID,
			receipt.ClientName,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
			string(receipt.PaymentMethod),
			receipt.TotalValue,
		})
	}
	return rows
}

func stockOutRow(s models.StockOut) []interface{} {
	return []interface{}{
		s.Date.Format(dateFormat),
		s.ID,
		s.ProductID,
		s.ProductName,
		s.Quantity,
		string(s.Reason),
		s.Responsible,
	}
}
