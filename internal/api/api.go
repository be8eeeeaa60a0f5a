// Package api is the client for the dashboard's data API.
//
// Data-driven views (product and invoice pages) load their records through
// a Client. In development the request-mocking worker in internal/mocks
// answers these requests in-process.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound is returned when the API has no record for an ID.
var ErrNotFound = errors.New("api: not found")

// StatusError reports an unexpected response status.
type StatusError struct {
	Method string
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
}

// Product is an ecommerce catalog item.
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Price       float64  `json:"price"`
	SalesPrice  float64  `json:"salesPrice"`
	Stock       bool     `json:"stock"`
	Rating      int      `json:"rating"`
	Description string   `json:"description"`
	Colors      []string `json:"colors"`
}

// Discount returns the percentage saved against SalesPrice, rounded down.
func (p Product) Discount() int {
	if p.SalesPrice <= 0 || p.Price >= p.SalesPrice {
		return 0
	}
	return int((p.SalesPrice - p.Price) * 100 / p.SalesPrice)
}

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Units     int     `json:"units"`
}

// Total is UnitPrice times Units.
func (it InvoiceItem) Total() float64 { return it.UnitPrice * float64(it.Units) }

// Invoice is a billing record.
type Invoice struct {
	ID        int           `json:"id"`
	BillFrom  string        `json:"billFrom"`
	BillTo    string        `json:"billTo"`
	Status    string        `json:"status"`
	OrderDate string        `json:"orderDate"`
	Items     []InvoiceItem `json:"items"`
}

// Total sums the invoice lines.
func (inv Invoice) Total() float64 {
	var sum float64
	for _, it := range inv.Items {
		sum += it.Total()
	}
	return sum
}

// Client fetches records from the API. The zero value is not usable; use
// NewClient.
type Client struct {
	base string
	http *http.Client
}

// NewClient returns a client for baseURL. A nil hc uses a client with
// timeout.
func NewClient(baseURL string, hc *http.Client, timeout time.Duration) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

// BaseURL returns the URL every request path is joined to.
func (c *Client) BaseURL() string { return c.base }

// Products lists the catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	return out, c.get(ctx, "/api/products", &out)
}

// Product fetches one catalog item.
func (c *Client) Product(ctx context.Context, id int) (Product, error) {
	var out Product
	return out, c.get(ctx, "/api/products/"+strconv.Itoa(id), &out)
}

// Invoices lists every invoice.
func (c *Client) Invoices(ctx context.Context) ([]Invoice, error) {
	var out []Invoice
	return out, c.get(ctx, "/api/invoices", &out)
}

// Invoice fetches one invoice.
func (c *Client) Invoice(ctx context.Context, id int) (Invoice, error) {
	var out Invoice
	return out, c.get(ctx, "/api/invoices/"+strconv.Itoa(id), &out)
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	url := c.base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: req.Method, URL: url, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("api: decode %s: %w", path, err)
	}
	return nil
}
