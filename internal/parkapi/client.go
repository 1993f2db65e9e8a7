// Package parkapi is the typed client for the EnjoyPark backend REST API.
// The API contract is fixed and opaque; this package only decodes the
// fields the companion service consumes.
package parkapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/enjoypark/companion/internal/domain"
	"github.com/enjoypark/companion/internal/utils"
)

// ErrNoCredential is returned when an authenticated endpoint is called
// without a stored bearer token.
var ErrNoCredential = errors.New("parkapi: no credential available")

// TokenProvider supplies the bearer token attached to authenticated
// requests. Returning an empty token with a nil error is treated the same
// as ErrNoCredential.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the park backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenProvider
}

// NewClient creates a backend client. tokens may be nil for read-only
// catalog use.
func NewClient(baseURL string, tokens TokenProvider, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		tokens:     tokens,
	}
}

// envelope is the {"data": ...} wrapper the backend puts around payloads.
type envelope[T any] struct {
	Data T `json:"data"`
}

// Attractions fetches the attraction catalog.
func (c *Client) Attractions(ctx context.Context) ([]domain.PointOfInterest, error) {
	return c.catalog(ctx, "attractions")
}

// Shows fetches the show catalog.
func (c *Client) Shows(ctx context.Context) ([]domain.PointOfInterest, error) {
	return c.catalog(ctx, "shows")
}

// Restaurants fetches the restaurant catalog.
func (c *Client) Restaurants(ctx context.Context) ([]domain.PointOfInterest, error) {
	return c.catalog(ctx, "restaurants")
}

// Shops fetches the shop catalog.
func (c *Client) Shops(ctx context.Context) ([]domain.PointOfInterest, error) {
	return c.catalog(ctx, "shops")
}

// Services fetches the guest-service catalog.
func (c *Client) Services(ctx context.Context) ([]domain.PointOfInterest, error) {
	return c.catalog(ctx, "services")
}

// All fetches the full point-of-interest catalog in one call.
func (c *Client) All(ctx context.Context) ([]domain.PointOfInterest, error) {
	return c.catalog(ctx, "all")
}

func (c *Client) catalog(ctx context.Context, kind string) ([]domain.PointOfInterest, error) {
	var out envelope[[]domain.PointOfInterest]
	if err := c.get(ctx, "/park/"+kind, false, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Tickets fetches the caller's park tickets.
func (c *Client) Tickets(ctx context.Context) ([]domain.TicketRecord, error) {
	var out envelope[[]domain.TicketRecord]
	if err := c.get(ctx, "/tickets", true, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Orders fetches the caller's shop orders.
func (c *Client) Orders(ctx context.Context) ([]domain.OrderRecord, error) {
	var out envelope[[]domain.OrderRecord]
	if err := c.get(ctx, "/orders", true, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// PlannerItems fetches the authoritative planner collection for a date
// (YYYY-MM-DD).
func (c *Client) PlannerItems(ctx context.Context, date string) ([]*domain.PlannerItem, error) {
	var out envelope[[]*domain.PlannerItem]
	path := "/planner/items?date=" + url.QueryEscape(date)
	if err := c.get(ctx, path, true, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// BookShowRequest is the payload for a show booking.
type BookShowRequest struct {
	ShowID string `json:"show_id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Seats  int    `json:"seats"`
}

// BookShowResponse is the backend's booking confirmation.
type BookShowResponse struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

// BookShow places a show booking on behalf of the visitor.
func (c *Client) BookShow(ctx context.Context, req BookShowRequest) (*BookShowResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("parkapi: marshal booking: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bookings/shows", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parkapi: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if err := c.authorize(ctx, httpReq); err != nil {
		return nil, err
	}

	var out envelope[BookShowResponse]
	if err := c.do(httpReq, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) get(ctx context.Context, path string, authed bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("parkapi: create request: %w", err)
	}
	if authed {
		if err := c.authorize(ctx, req); err != nil {
			return err
		}
	}
	return c.do(req, out)
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.tokens == nil {
		return ErrNoCredential
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("parkapi: resolve credential: %w", err)
	}
	if token == "" {
		return ErrNoCredential
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("parkapi: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Body drained for connection reuse; content is not useful beyond
		// a short diagnostic.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("parkapi: %s %s: unexpected status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parkapi: decode %s: %w", req.URL.Path, err)
	}
	return nil
}
