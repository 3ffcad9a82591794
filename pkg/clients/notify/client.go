package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Client delivers owner alerts to an external channel.
type Client interface {
	Send(ctx context.Context, alert models.Alert) error
}

// WebhookClient posts alerts as JSON to a chat or automation webhook.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client from the alert settings.
func NewClient(cfg config.AlertsConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	if cfg.WebhookToken != "" {
		restyClient.SetAuthToken(cfg.WebhookToken)
	}

	return &WebhookClient{httpClient: restyClient, url: cfg.WebhookURL}
}

// webhookPayload is compatible with Slack/Mattermost style incoming hooks.
type webhookPayload struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

type webhookError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Send posts the alert. Non-2xx responses are returned as errors.
func (c *WebhookClient) Send(ctx context.Context, alert models.Alert) error {
	if c.url == "" {
		return errors.New("alert webhook url is not configured")
	}

	apiErr := new(webhookError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(webhookPayload{
			Kind:  string(alert.Kind),
			Title: alert.Title,
			Text:  fmt.Sprintf("%s\n%s", alert.Title, alert.Message),
		}).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		if message == "" {
			message = resp.Status()
		}
		return fmt.Errorf("alert webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
