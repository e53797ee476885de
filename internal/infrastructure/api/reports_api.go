package api

import (
	"context"
	"net/http"
	"net/url"
)

// Report DTOs mirror the analytics endpoints. All aggregation happens
// server-side; these are display-ready numbers.

type Summary struct {
	Period        string  `json:"period"`
	Total         float64 `json:"total"`
	Count         int     `json:"count"`
	AverageCost   float64 `json:"averageCost"`
	PercentChange float64 `json:"percentChange"`
}

type CategoryShare struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Percent  float64 `json:"percent"`
}

type TrendPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

type YearTotal struct {
	Year  int     `json:"year"`
	Total float64 `json:"total"`
}

// ReportsClient fetches aggregated analytics for the admin dashboards
type ReportsClient struct {
	client *Client
}

// NewReportsClient creates the reports endpoint client
func NewReportsClient(client *Client) *ReportsClient {
	return &ReportsClient{client: client}
}

// Summary fetches totals for a period ("week", "month", "quarter", "year")
func (r *ReportsClient) Summary(ctx context.Context, token, period string) (*Summary, error) {
	var resp Summary
	path := "/reports/summary?period=" + url.QueryEscape(period)
	if err := r.client.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Categories fetches the per-category breakdown for a period
func (r *ReportsClient) Categories(ctx context.Context, token, period string) ([]CategoryShare, error) {
	var resp []CategoryShare
	path := "/reports/categories?period=" + url.QueryEscape(period)
	if err := r.client.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Trend fetches the spending trend series for a period
func (r *ReportsClient) Trend(ctx context.Context, token, period string) ([]TrendPoint, error) {
	var resp []TrendPoint
	path := "/reports/trends?period=" + url.QueryEscape(period)
	if err := r.client.do(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Yearly fetches year-over-year totals
func (r *ReportsClient) Yearly(ctx context.Context, token string) ([]YearTotal, error) {
	var resp []YearTotal
	if err := r.client.do(ctx, http.MethodGet, "/reports/yearly", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
