package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		validation *models.ValidationError
		rejected   *models.RejectedError
		shortage   *models.InsufficientStockError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "field": validation.Field})
	case errors.As(err, &rejected):
		c.JSON(http.StatusConflict, gin.H{"error": rejected.Error(), "rejections": rejected.Rejections})
	case errors.As(err, &shortage):
		c.JSON(http.StatusConflict, gin.H{
			"error":     shortage.Error(),
			"productId": shortage.ProductID,
			"requested": shortage.Requested,
			"available": shortage.Available,
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, logger *zap.Logger, err error) {
	logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

// parseDate accepts RFC 3339 timestamps and plain dates, the latter at
// midnight in loc. Empty input yields the zero time.
func parseDate(field, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, models.Invalid(field, fmt.Sprintf("%q is not a date", value))
}

func deleted(c *gin.Context, ok bool) {
	c.JSON(http.StatusOK, gin.H{"deleted": ok})
}
