package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Products *handlers.ProductHandler
	Records  *handlers.RecordHandler
	Quotes   *handlers.QuoteHandler
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}

	api := r.Group("/api")

	api.GET("/dashboard", h.Products.Dashboard)
	products := api.Group("/products")
	products.GET("", h.Products.List)
	products.POST("", h.Products.Create)
	products.GET("/search", h.Products.Search)
	products.GET("/export", h.Products.Export)
	products.GET("/:id", h.Products.Get)
	products.PUT("/:id", h.Products.Update)
	products.DELETE("/:id", h.Products.Delete)
	products.POST("/:id/adjust", h.Products.Adjust)
	products.GET("/:id/health", h.Products.Health)

	stockOuts := api.Group("/stock-outs")
	stockOuts.GET("", h.Records.ListStockOuts)
	stockOuts.POST("", h.Records.CreateStockOut)
	stockOuts.DELETE("/:id", h.Records.DeleteStockOut)

	receipts := api.Group("/receipts")
	receipts.GET("", h.Records.ListReceipts)
	receipts.POST("", h.Records.CreateReceipt)
	receipts.GET("/:id", h.Records.GetReceipt)
	receipts.DELETE("/:id", h.Records.DeleteReceipt)

	budgets := api.Group("/budgets")
	budgets.GET("", h.Quotes.ListBudgets)
	budgets.POST("", h.Quotes.CreateBudget)
	budgets.GET("/:id", h.Quotes.GetBudget)
	budgets.PUT("/:id", h.Quotes.UpdateBudget)
	budgets.PATCH("/:id/status", h.Quotes.SetBudgetStatus)
	budgets.DELETE("/:id", h.Quotes.DeleteBudget)

	quotations := api.Group("/quotations")
	quotations.GET("", h.Quotes.ListQuotations)
	quotations.POST("", h.Quotes.CreateQuotation)
	quotations.GET("/:id", h.Quotes.GetQuotation)
	quotations.PUT("/:id", h.Quotes.UpdateQuotation)
	quotations.PATCH("/:id/status", h.Quotes.SetQuotationStatus)
	quotations.DELETE("/:id", h.Quotes.DeleteQuotation)
	quotations.GET("/:id/best-offer", h.Quotes.BestOffer)

	if logger != nil {
		logger.Info("router initialized", zap.Int("routes", len(r.Routes())))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("request completed", fields...)
			return
		}
		logger.Info("request completed", fields...)
	}
}
