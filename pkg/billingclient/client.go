/**
 * @description
 * This file provides a client for communicating with the billing-service to
 * retrieve a store's plan tier, used to flag which templates the merchant's
 * plan unlocks.
 */
package billingclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// PlanInfo is the billing plan of a store as reported by the billing-service.
type PlanInfo struct {
	Plan   string `json:"plan"`
	Status string `json:"status,omitempty"`
}

// Client provides methods to interact with the billing service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new billing service client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetStorePlan retrieves the plan tier for a given store. Callers should
// treat failures as "free" rather than blocking the merchant.
func (c *Client) GetStorePlan(ctx context.Context, storeID string) (*PlanInfo, error) {
	url := fmt.Sprintf("%s/stores/%s/plan", c.baseURL, storeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Error calling billing service: %v", err)
		return nil, fmt.Errorf("failed to call billing service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Billing service returned status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("billing service returned status %d", resp.StatusCode)
	}

	var plan PlanInfo
	if err := json.Unmarshal(body, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &plan, nil
}
