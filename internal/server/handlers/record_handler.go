package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// RecordService covers the stock-out log and the sales receipts.
type RecordService interface {
	ListStockOuts() []models.StockOut
	RecordStockOut(ctx context.Context, input models.StockOutInput) (models.StockOutResult, error)
	DeleteStockOut(ctx context.Context, id string) bool
	ListReceipts() []models.SalesReceipt
	GetReceipt(id string) (models.SalesReceipt, error)
	RecordReceipt(ctx context.Context, input models.SalesReceiptInput) (models.SalesReceiptResult, error)
	DeleteReceipt(ctx context.Context, id string) bool
	Location() *time.Location
}

// RecordHandler exposes stock-outs and receipts over HTTP.
type RecordHandler struct {
	svc    RecordService
	logger *zap.Logger
}

func NewRecordHandler(svc RecordService, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{svc: svc, logger: logger}
}

type stockOutRequest struct {
	ProductID   string `json:"productId"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	Date        string `json:"date"`
	Responsible string `json:"responsible"`
}

type receiptRequest struct {
	ClientName    string                  `json:"clientName"`
	Items         []models.SalesItemInput `json:"items"`
	PaymentMethod string                  `json:"paymentMethod"`
	SaleDate      string                  `json:"saleDate"`
}

func (h *RecordHandler) ListStockOuts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListStockOuts())
}

// CreateStockOut answers 201 with any best-effort rejections in the body.
func (h *RecordHandler) CreateStockOut(c *gin.Context) {
	var req stockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	date, err := parseDate("date", req.Date, h.svc.Location())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.svc.RecordStockOut(c.Request.Context(), models.StockOutInput{
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
		Date:        date,
		Responsible: req.Responsible,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *RecordHandler) DeleteStockOut(c *gin.Context) {
	deleted(c, h.svc.DeleteStockOut(c.Request.Context(), c.Param("id")))
}

func (h *RecordHandler) ListReceipts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListReceipts())
}

func (h *RecordHandler) GetReceipt(c *gin.Context) {
	r, err := h.svc.GetReceipt(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RecordHandler) CreateReceipt(c *gin.Context) {
	var req receiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	saleDate, err := parseDate("saleDate", req.SaleDate, h.svc.Location())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.svc.RecordReceipt(c.Request.Context(), models.SalesReceiptInput{
		ClientName:    req.ClientName,
		Items:         req.Items,
		PaymentMethod: req.PaymentMethod,
		SaleDate:      saleDate,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *RecordHandler) DeleteReceipt(c *gin.Context) {
	deleted(c, h.svc.DeleteReceipt(c.Request.Context(), c.Param("id")))
}
