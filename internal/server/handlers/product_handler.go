package handlers

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProductService is the inventory surface the product handler needs.
type ProductService interface {
	ListProducts() []models.Product
	GetProduct(id string) (models.Product, error)
	CreateProduct(ctx context.Context, input models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, id string, input models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, id string) bool
	AdjustProduct(ctx context.Context, id string, delta int, note string) (models.Product, error)
	ProductHealth(id string) (models.StockHealth, error)
	SearchProducts(filter models.ProductFilter) []models.Product
	Dashboard() models.InventorySummary
	ExportProducts() (*bytes.Buffer, string, error)
}

// ProductHandler exposes the inventory ledger over HTTP.
type ProductHandler struct {
	svc    ProductService
	logger *zap.Logger
}

func NewProductHandler(svc ProductService, logger *zap.Logger) *ProductHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductHandler{svc: svc, logger: logger}
}

type adjustRequest struct {
	Delta int    `json:"delta"`
	Note  string `json:"note"`
}

func (h *ProductHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListProducts())
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.svc.GetProduct(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	p, err := h.svc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	p, err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	deleted(c, h.svc.DeleteProduct(c.Request.Context(), c.Param("id")))
}

// Adjust removes units from a product outside of a stock-out or receipt.
func (h *ProductHandler) Adjust(c *gin.Context) {
	var req adjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.logger, err)
		return
	}
	p, err := h.svc.AdjustProduct(c.Request.Context(), c.Param("id"), req.Delta, req.Note)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Health(c *gin.Context) {
	health, err := h.svc.ProductHealth(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, health)
}

// Search filters by ?q= (name substring), ?category= and ?stock=all|low|aged.
func (h *ProductHandler) Search(c *gin.Context) {
	stock, ok := models.ParseStockFilter(c.Query("stock"))
	if !ok {
		respondError(c, h.logger, models.Invalid("stock", "must be all, low or aged"))
		return
	}
	c.JSON(http.StatusOK, h.svc.SearchProducts(models.ProductFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Stock:    stock,
	}))
}

func (h *ProductHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard())
}

func (h *ProductHandler) Export(c *gin.Context) {
	buf, name, err := h.svc.ExportProducts()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
