// Package billing is a thin client for the external subscription collaborator.
// Every call is best-effort with a bounded timeout; callers are expected to
// log failures and continue, with reconciliation handled out of band.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitbook/pkg/utils"

	"go.uber.org/zap"
)

// ErrDegraded marks a billing call that failed. It is non-fatal by contract:
// the enclosing ledger operation must still commit.
var ErrDegraded = errors.New("billing service degraded")

type Subscription struct {
	Reference string `json:"reference"`
	Plan      string `json:"plan"`
	Status    string `json:"status"`
}

type Client struct {
	baseURL    string
	freezePlan string
	http       *http.Client
	log        *zap.Logger
}

// NewClient returns nil when no billing base URL is configured; all methods
// are nil-safe and report ErrDegraded in that case.
func NewClient(config utils.BillingConfig, log *zap.Logger) *Client {
	if config.BaseURL == "" {
		return nil
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return &Client{
		baseURL:    config.BaseURL,
		freezePlan: config.FreezePlan,
		http:       &http.Client{Timeout: timeout},
		log:        log.With(zap.String("client", "billing")),
	}
}

// FreezePlan is the plan accounts are parked on while frozen.
func (c *Client) FreezePlan() string {
	if c == nil || c.freezePlan == "" {
		return "freeze"
	}
	return c.freezePlan
}

// ChangePlan swaps the subscription plan for the given billing reference.
func (c *Client) ChangePlan(ctx context.Context, billingRef, plan string) error {
	if c == nil {
		return fmt.Errorf("%w: no billing endpoint configured", ErrDegraded)
	}

	payload, err := json.Marshal(map[string]string{"plan": plan})
	if err != nil {
		return fmt.Errorf("%w: marshal plan change: %v", ErrDegraded, err)
	}

	url := fmt.Sprintf("%s/v1/subscriptions/%s/plan", c.baseURL, billingRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build plan change request: %v", ErrDegraded, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: change plan to %s: %v", ErrDegraded, plan, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: change plan to %s: status %d", ErrDegraded, plan, resp.StatusCode)
	}

	return nil
}

// GetSubscription retrieves the current subscription for a billing reference.
func (c *Client) GetSubscription(ctx context.Context, billingRef string) (*Subscription, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: no billing endpoint configured", ErrDegraded)
	}

	url := fmt.Sprintf("%s/v1/subscriptions/%s", c.baseURL, billingRef)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build subscription request: %v", ErrDegraded, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get subscription: %v", ErrDegraded, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: get subscription: status %d", ErrDegraded, resp.StatusCode)
	}

	var sub Subscription
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		return nil, fmt.Errorf("%w: decode subscription: %v", ErrDegraded, err)
	}

	return &sub, nil
}
