package api

import (
	"context"
	"net/http"
	"time"
)

// Expense is a travel expense record as the backend returns it. The client
// never computes over these fields; it only carries them to the caller.
type Expense struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DistanceKm  float64   `json:"distanceKm"`
	Cost        float64   `json:"cost"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes,omitempty"`
}

// ExpenseInput is the payload for creating or updating an expense
type ExpenseInput struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	DistanceKm  float64   `json:"distanceKm"`
	Cost        float64   `json:"cost"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
	Notes       string    `json:"notes,omitempty"`
}

// ExpensesClient is the pass-through client for expense CRUD. Business rules
// live on the server; this only moves records.
type ExpensesClient struct {
	client *Client
}

// NewExpensesClient creates the expenses endpoint client
func NewExpensesClient(client *Client) *ExpensesClient {
	return &ExpensesClient{client: client}
}

// List fetches the caller's expenses
func (e *ExpensesClient) List(ctx context.Context, token string) ([]Expense, error) {
	var resp []Expense
	if err := e.client.do(ctx, http.MethodGet, "/expenses", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Get fetches a single expense by id
func (e *ExpensesClient) Get(ctx context.Context, token, id string) (*Expense, error) {
	var resp Expense
	if err := e.client.do(ctx, http.MethodGet, "/expenses/"+id, token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create submits a new expense
func (e *ExpensesClient) Create(ctx context.Context, token string, input ExpenseInput) (*Expense, error) {
	var resp Expense
	if err := e.client.do(ctx, http.MethodPost, "/expenses", token, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update replaces an expense
func (e *ExpensesClient) Update(ctx context.Context, token, id string, input ExpenseInput) (*Expense, error) {
	var resp Expense
	if err := e.client.do(ctx, http.MethodPut, "/expenses/"+id, token, input, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes an expense
func (e *ExpensesClient) Delete(ctx context.Context, token, id string) error {
	return e.client.do(ctx, http.MethodDelete, "/expenses/"+id, token, nil, nil)
}
