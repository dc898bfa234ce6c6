package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/topupid/checkout-api/internal/usecase"
)

// HTTPFulfillment posts committed orders to the provider's dispatch
// endpoint. The provider answers settlement results asynchronously on
// the payment-status topic.
type HTTPFulfillment struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func NewHTTPFulfillment(baseURL, apiKey string) *HTTPFulfillment {
	return &HTTPFulfillment{
		Client:  &http.Client{Timeout: 10 * time.Second},
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

func (g *HTTPFulfillment) Dispatch(ctx context.Context, msg usecase.OrderCommittedMsg) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal dispatch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/v1/dispatch", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("build dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.APIKey != "" {
		req.Header.Set("X-Api-Key", g.APIKey)
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return fmt.Errorf("call fulfillment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("fulfillment returned %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
