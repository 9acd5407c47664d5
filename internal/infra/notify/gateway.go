package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/freshguard/freshd/internal/domain"
)

type notificationPayload struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	FireAt     string `json:"fire_at"`
	Badge      int    `json:"badge"`
}

type permissionResponse struct {
	Granted bool `json:"granted"`
}

// GatewayClient talks to a local push-gateway over HTTP. The gateway
// owns the pending-request set; requests are keyed by identifier so a
// resubmission replaces the previous entry.
type GatewayClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewGatewayClient(baseURL string) *GatewayClient {
	return &GatewayClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *GatewayClient) RequestPermission(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/permission", nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to request permission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var perm permissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&perm); err != nil {
		return false, fmt.Errorf("failed to decode permission response: %w", err)
	}

	return perm.Granted, nil
}

func (c *GatewayClient) Submit(ctx context.Context, request domain.NotificationRequest) error {
	payload := notificationPayload{
		Identifier: request.Identifier,
		Title:      request.Title,
		Body:       request.Body,
		FireAt:     request.FireAt.Format(time.RFC3339),
		Badge:      1,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	slog.DebugContext(ctx, "submitting notification to gateway",
		slog.String("identifier", request.Identifier),
		slog.Time("fire_at", request.FireAt),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notifications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

func (c *GatewayClient) CancelAll(ctx context.Context) error {
	return c.cancel(ctx, "")
}

func (c *GatewayClient) CancelWithPrefix(ctx context.Context, prefix string) error {
	return c.cancel(ctx, prefix)
}

func (c *GatewayClient) cancel(ctx context.Context, prefix string) error {
	endpoint := c.baseURL + "/notifications"
	if prefix != "" {
		endpoint += "?prefix=" + url.QueryEscape(prefix)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}

func (c *GatewayClient) ClearBadge(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/badge", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
