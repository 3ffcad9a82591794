package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// QuoteService covers client budgets and supplier quotations.
type QuoteService interface {
	ListBudgets() []models.Budget
	GetBudget(id string) (models.Budget, error)
	CreateBudget(ctx context.Context, input models.BudgetInput) (models.Budget, error)
	UpdateBudget(ctx context.Context, id string, input models.BudgetInput) (models.Budget, error)
	SetBudgetStatus(ctx context.Context, id, status string) (models.Budget, error)
	DeleteBudget(ctx context.Context, id string) bool

	ListQuotations() []models.Quotation
	GetQuotation(id string) (models.Quotation, error)
	CreateQuotation(ctx context.Context, input models.QuotationInput) (models.Quotation, error)
	UpdateQuotation(ctx context.Context, id string, input models.QuotationInput) (models.Quotation, error)
	SetQuotationStatus(ctx context.Context, id, status string) (models.Quotation, error)
	DeleteQuotation(ctx context.Context, id string) bool
	BestOffer(id string) (models.Supplier, bool, error)
	Location() *time.Location
}

// QuoteHandler exposes budgets and quotations over HTTP.
type QuoteHandler struct {
	svc    QuoteService
	logger *zap.Logger
}

func NewQuoteHandler(svc QuoteService, logger *zap.Logger) *QuoteHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuoteHandler{svc: svc, logger: logger}
}

type statusRequest struct {
	Status string `json:"status"`
}

type quotationRequest struct {
	ClientName  string                 `json:"clientName"`
	DeviceModel string                 `json:"deviceModel"`
	PartType    string                 `json:"partType"`
	RequestDate string                 `json:"requestDate"`
	Status      string                 `json:"status"`
	Suppliers   []models.SupplierInput `json:"suppliers"`
}

func (r quotationRequest) input(loc *time.Location) (models.QuotationInput, error) {
	date, err := parseDate("requestDate", r.RequestDate, loc)
	if err != nil {
		return models.QuotationInput{}, err
	}
	return models.QuotationInput{
		ClientName:  r.ClientName,
		DeviceModel: r.DeviceModel,
		PartType:    r.PartType,
		RequestDate: date,
		Status:      r.Status,
		Suppliers:   r.Suppliers,
	}, nil
}

func (h *QuoteHandler) ListBudgets(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListBudgets())
}

func (h *QuoteHandler) GetBudget(c *gin.Context) {
	b, err := h.svc.GetBudget(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *QuoteHandler) CreateBudget(c *gin.Context) {
	var input models.BudgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	b, err := h.svc.CreateBudget(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *QuoteHandler) UpdateBudget(c *gin.Context) {
	var input models.BudgetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	b, err := h.svc.UpdateBudget(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *QuoteHandler) SetBudgetStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	b, err := h.svc.SetBudgetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *QuoteHandler) DeleteBudget(c *gin.Context) {
	deleted(c, h.svc.DeleteBudget(c.Request.Context(), c.Param("id")))
}

func (h *QuoteHandler) ListQuotations(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListQuotations())
}

func (h *QuoteHandler) GetQuotation(c *gin.Context) {
	q, err := h.svc.GetQuotation(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuoteHandler) CreateQuotation(c *gin.Context) {
	var req quotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	input, err := req.input(h.svc.Location())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	q, err := h.svc.CreateQuotation(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QuoteHandler) UpdateQuotation(c *gin.Context) {
	var req quotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	input, err := req.input(h.svc.Location())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	q, err := h.svc.UpdateQuotation(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuoteHandler) SetQuotationStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	q, err := h.svc.SetQuotationStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuoteHandler) DeleteQuotation(c *gin.Context) {
	deleted(c, h.svc.DeleteQuotation(c.Request.Context(), c.Param("id")))
}

// BestOffer answers 204 when no supplier has quoted a price yet.
func (h *QuoteHandler) BestOffer(c *gin.Context) {
	s, found, err := h.svc.BestOffer(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !found {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, s)
}
