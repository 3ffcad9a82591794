package alerts

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
	"github.com/mamadbah2/stockroom/pkg/clients/notify"
)

// ErrNoChannel is returned when no outbound channel is configured.
var ErrNoChannel = errors.New("no alert channel configured")

const sendTimeout = 10 * time.Second

// Service turns stock events into owner notifications.
type Service struct {
	client   notify.Client
	reporter *reporting.Service
	lowStock bool
	logger   *zap.Logger
}

// NewService wires the alert service. A nil client keeps alerts in the logs only.
func NewService(client notify.Client, reporter *reporting.Service, lowStockEnabled bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reporter == nil {
		reporter = reporting.NewService("", logger)
	}
	return &Service{client: client, reporter: reporter, lowStock: lowStockEnabled, logger: logger}
}

// LowStock logs and, when enabled, pushes one alert per product.
func (s *Service) LowStock(ctx context.Context, products []models.Product) {
	for _, p := range products {
		alert := models.Alert{
			Kind:    models.AlertLowStock,
			Title:   "Low stock alert",
			Message: s.reporter.LowStockMessage(p),
		}
		s.logger.Warn("low stock", zap.String("product_id", p.ID), zap.String("name", p.Name), zap.Int("quantity", p.Quantity))

		if !s.lowStock || s.client == nil {
			continue
		}
		if err := s.send(ctx, alert); err != nil {
			s.logger.Error("failed to send low stock alert", zap.String("product_id", p.ID), zap.Error(err))
		}
	}
}

// SendDigest pushes the formatted digest.
func (s *Service) SendDigest(ctx context.Context, digest models.DailyDigest) error {
	text := s.reporter.FormatDigest(digest)
	s.logger.Info("daily digest", zap.String("text", text))
	if s.client == nil {
		return ErrNoChannel
	}
	return s.send(ctx, models.Alert{Kind: models.AlertDigest, Title: "Daily stock report", Message: text})
}

func (s *Service) send(ctx context.Context, alert models.Alert) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return s.client.Send(ctxWithTimeout, alert)
}
