// Package woocommerce implements storefront.Gateway against the
// WooCommerce v3 REST API.
package woocommerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/storeboard/backend/internal/domain/storefront"
	"github.com/storeboard/backend/internal/infrastructure/logger"
)

// maxResponseSize is the maximum allowed response size from the store API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// apiPrefix is the fixed WooCommerce REST API prefix
const apiPrefix = "wp-json/wc/v3"

// Client calls the WooCommerce REST API of a tenant's store. One
// client serves all tenants; credentials travel with each call.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ListProducts implements storefront.Gateway
func (c *Client) ListProducts(ctx context.Context, creds storefront.Credentials, query url.Values) (json.RawMessage, error) {
	return c.call(ctx, creds, http.MethodGet, "products", query, nil)
}

// GetProduct implements storefront.Gateway
func (c *Client) GetProduct(ctx context.Context, creds storefront.Credentials, id int64) (json.RawMessage, error) {
	return c.call(ctx, creds, http.MethodGet, fmt.Sprintf("products/%d", id), nil, nil)
}

// UpdateProduct implements storefront.Gateway
func (c *Client) UpdateProduct(ctx context.Context, creds storefront.Credentials, id int64, body json.RawMessage) (json.RawMessage, error) {
	return c.call(ctx, creds, http.MethodPut, fmt.Sprintf("products/%d", id), nil, body)
}

// DeleteProduct implements storefront.Gateway. A plain DELETE moves the
// product to the store's trash rather than erasing it.
func (c *Client) DeleteProduct(ctx context.Context, creds storefront.Credentials, id int64) (json.RawMessage, error) {
	return c.call(ctx, creds, http.MethodDelete, fmt.Sprintf("products/%d", id), nil, nil)
}

// ListOrders implements storefront.Gateway
func (c *Client) ListOrders(ctx context.Context, creds storefront.Credentials, query url.Values) (json.RawMessage, error) {
	return c.call(ctx, creds, http.MethodGet, "orders", query, nil)
}

// call performs one authenticated request against the store API.
func (c *Client) call(ctx context.Context, creds storefront.Credentials, method, resource string, query url.Values, body json.RawMessage) (json.RawMessage, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	target := fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(creds.StoreURL, "/"), apiPrefix, resource)
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	// Body only accompanies mutating verbs
	var reader io.Reader
	if body != nil && (method == http.MethodPost || method == http.MethodPut) {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build store request: %w", err)
	}

	req.SetBasicAuth(creds.ConsumerKey, creds.ConsumerSecret)
	req.Header.Set("Content-Type", "application/json")

	log := logger.FromContext(ctx)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("store API request failed",
			zap.String("method", method),
			zap.String("resource", resource),
			zap.Error(err))
		return nil, &storefront.APIError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	log.Debug("store API request",
		zap.String("method", method),
		zap.String("resource", resource),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &storefront.APIError{StatusCode: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &storefront.APIError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(raw, resp),
		}
	}

	if !json.Valid(raw) {
		return nil, &storefront.FormatError{Raw: string(raw)}
	}

	return json.RawMessage(raw), nil
}

// upstreamMessage extracts the error message WooCommerce puts in its
// error bodies, falling back to the HTTP status line.
func upstreamMessage(raw []byte, resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
