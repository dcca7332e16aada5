// Package shopapi talks to the shop backend over HTTP JSON. It is the
// only network boundary of the storefront: listing the catalog,
// fetching one product and submitting a finished order.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/oqdoku94/web-larek-frontend/internal/domain"
)

var ErrNotFound = errors.New("product not found")

// ShopAPI is the gateway contract consumed by the checkout controller.
type ShopAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error)
}

// listResponse mirrors the backend's list envelope.
type listResponse struct {
	Total int              `json:"total"`
	Items []domain.Product `json:"items"`
}

// Client is the HTTP implementation of ShopAPI. Request timeouts live
// here, not in the callers, and every call goes through a circuit
// breaker so a dead backend fails fast instead of hanging the UI.
type Client struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	settings := gobreaker.Settings{
		Name:    "shop-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// A 404 is an answer, not a backend failure.
			return err == nil || errors.Is(err, ErrNotFound)
		},
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		timeout: timeout,
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	data, err := c.do(ctx, http.MethodGet, "/product/", nil)
	if err != nil {
		return nil, err
	}

	var list listResponse
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("unmarshal product list failed: %w", err)
	}
	return list.Items, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	data, err := c.do(ctx, http.MethodGet, "/product/"+id, nil)
	if err != nil {
		return domain.Product{}, err
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return domain.Product{}, fmt.Errorf("unmarshal product failed: %w", err)
	}
	return product, nil
}

func (c *Client) SubmitOrder(ctx context.Context, order domain.Order) (domain.OrderConfirmation, error) {
	data, err := c.do(ctx, http.MethodPost, "/order", order)
	if err != nil {
		return domain.OrderConfirmation{}, err
	}

	var confirmation domain.OrderConfirmation
	if err := json.Unmarshal(data, &confirmation); err != nil {
		return domain.OrderConfirmation{}, fmt.Errorf("unmarshal order confirmation failed: %w", err)
	}
	return confirmation, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		ctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var body io.Reader
		if in != nil {
			payload, err := json.Marshal(in)
			if err != nil {
				return nil, fmt.Errorf("marshal request failed: %w", err)
			}
			body = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, fmt.Errorf("build request failed: %w", err)
		}
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("shop api request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response failed: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrNotFound
		case resp.StatusCode >= 400:
			return nil, fmt.Errorf("shop api %s %s: status %d: %s",
				method, path, resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return data, nil
	})
}
