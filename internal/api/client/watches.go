package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/venkatadeepikapotu/faredrop-tracker/pkg/types"
)

// CreateWatchRequest contains the fields the API accepts on create.
type CreateWatchRequest struct {
	Origin         string   `json:"origin,omitempty"`
	Destination    string   `json:"destination,omitempty"`
	DepartureDate  string   `json:"departureDate,omitempty"`
	ReturnDate     *string  `json:"returnDate,omitempty"`
	PriceThreshold *float64 `json:"priceThreshold,omitempty"`
	Currency       string   `json:"currency,omitempty"`
}

// History is a page of price snapshots.
type History struct {
	Snapshots []domain.PriceSnapshot `json:"snapshots"`
	Count     int                    `json:"count"`
}

// Quota reports fare provider usage.
type Quota struct {
	DailyLimit int64  `json:"dailyLimit"`
	DailyUsed  int64  `json:"dailyUsed"`
	Remaining  int64  `json:"remaining"`
	ResetAt    string `json:"resetAt"`
}

// ListWatches returns the caller's watches.
func (c *Client) ListWatches(ctx context.Context) ([]domain.Watch, error) {
	var resp struct {
		Watches []domain.Watch `json:"watches"`
	}
	if err := c.send(ctx, call{method: http.MethodGet, path: []string{"watches"}, out: &resp}); err != nil {
		return nil, err
	}
	return resp.Watches, nil
}

// GetWatch returns a single watch by ID.
func (c *Client) GetWatch(ctx context.Context, id string) (*domain.Watch, error) {
	var w domain.Watch
	if err := c.send(ctx, call{method: http.MethodGet, path: []string{"watches", id}, out: &w}); err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWatch creates a new watch.
func (c *Client) CreateWatch(ctx context.Context, req *CreateWatchRequest) (*domain.Watch, error) {
	var created domain.Watch
	if err := c.send(ctx, call{method: http.MethodPost, path: []string{"watches"}, in: req, out: &created}); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateWatch applies a partial update to a watch.
func (c *Client) UpdateWatch(ctx context.Context, id string, patch *domain.WatchPatch) (*domain.Watch, error) {
	var updated domain.Watch
	if err := c.send(ctx, call{method: http.MethodPatch, path: []string{"watches", id}, in: patch, out: &updated}); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteWatch deletes a watch by ID.
func (c *Client) DeleteWatch(ctx context.Context, id string) error {
	return c.send(ctx, call{method: http.MethodDelete, path: []string{"watches", id}})
}

// GetHistory returns up to limit snapshots for a watch. A non-positive limit
// uses the server default.
func (c *Client) GetHistory(ctx context.Context, id string, limit int) (*History, error) {
	rt := call{method: http.MethodGet, path: []string{"watches", id, "history"}}
	if limit > 0 {
		rt.query = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var h History
	rt.out = &h
	if err := c.send(ctx, rt); err != nil {
		return nil, err
	}
	return &h, nil
}

// GetQuota returns the fare provider quota status.
func (c *Client) GetQuota(ctx context.Context) (*Quota, error) {
	var q Quota
	if err := c.send(ctx, call{method: http.MethodGet, path: []string{"quota"}, out: &q}); err != nil {
		return nil, err
	}
	return &q, nil
}

// TriggerPoll runs a polling pass on the server and returns its summary.
func (c *Client) TriggerPoll(ctx context.Context) (*domain.PollSummary, error) {
	var s domain.PollSummary
	if err := c.send(ctx, call{method: http.MethodPost, path: []string{"poll"}, out: &s}); err != nil {
		return nil, err
	}
	return &s, nil
}
