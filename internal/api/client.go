// Package api talks to the remote shop API: it loads the product catalog
// and submits orders.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/dshills/storefront/internal/shop"
)

// CatalogSource loads the product catalog.
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]shop.Product, error)
}

// OrderSink accepts submitted orders.
type OrderSink interface {
	SubmitOrder(ctx context.Context, order shop.Order) (shop.OrderResult, error)
}

// DefaultTimeout bounds a single request when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config holds client configuration.
type Config struct {
	// BaseURL is the API root, e.g. "https://larek-api.example/api/weblarek".
	BaseURL string

	// CDNURL is prepended to every product image path.
	CDNURL string

	// Timeout bounds each request.
	Timeout time.Duration

	// RequestsPerSecond limits outgoing requests. Zero disables the limit.
	RequestsPerSecond float64

	// Burst is the limiter burst size. Values below 1 are treated as 1.
	Burst int
}

// Client is an HTTP client for the shop API.
type Client struct {
	baseURL    string
	cdnURL     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		cdnURL:  cfg.CDNURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(cfg.Burst, 1))
	}
	return c
}

// FetchProducts loads the whole catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]shop.Product, error) {
	body, err := c.do(ctx, http.MethodGet, "/product", nil)
	if err != nil {
		return nil, err
	}

	items := gjson.GetBytes(body, "items")
	if !items.IsArray() {
		return nil, fmt.Errorf("%w: missing items list", ErrInvalidResponse)
	}

	var products []shop.Product
	if err := json.Unmarshal([]byte(items.Raw), &products); err != nil {
		return nil, fmt.Errorf("%w: decode items: %v", ErrInvalidResponse, err)
	}
	for i := range products {
		products[i].Image = c.cdnURL + products[i].Image
	}
	return products, nil
}

// SubmitOrder places an order.
func (c *Client) SubmitOrder(ctx context.Context, order shop.Order) (shop.OrderResult, error) {
	body, err := c.do(ctx, http.MethodPost, "/order", order)
	if err != nil {
		return shop.OrderResult{}, err
	}

	var result shop.OrderResult
	if err := json.Unmarshal(body, &result); err != nil {
		return shop.OrderResult{}, fmt.Errorf("%w: decode order result: %v", ErrInvalidResponse, err)
	}
	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limit: %w", err)
		}
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, body)
	}
	return body, nil
}
