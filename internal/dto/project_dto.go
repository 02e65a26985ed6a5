package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ProjectLineRequest is one (item, quantity, duration) selection.
// Duration is in weeks or months depending on the item's period.
type ProjectLineRequest struct {
	ItemID   string `json:"item_id"  validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Duration int    `json:"duration" validate:"required,min=1"`
}

type CreateProjectRequest struct {
	Name  string               `json:"name"  validate:"required,min=2,max=200"`
	Items []ProjectLineRequest `json:"items" validate:"dive"`
}

// CalculatePriceRequest drives the stateless what-if quotation — same line
// shape as project creation, nothing persisted.
type CalculatePriceRequest struct {
	Items []ProjectLineRequest `json:"items" validate:"required,min=1,dive"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProjectItemResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  int             `json:"quantity"`
	Duration  int             `json:"duration"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
}

type ProjectResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	UserID      string                `json:"user_id"`
	TotalCost   decimal.Decimal       `json:"total_cost"`
	TargetPrice decimal.Decimal       `json:"target_price"`
	MinPrice    decimal.Decimal       `json:"min_price"`
	CreatedAt   string                `json:"created_at"`
	Items       []ProjectItemResponse `json:"items"`
}

type CalculatePriceResponse struct {
	TotalCost   decimal.Decimal `json:"total_cost"`
	TargetPrice decimal.Decimal `json:"target_price"`
	MinPrice    decimal.Decimal `json:"min_price"`
	Rates       RatesResponse   `json:"rates"`
}

// QuoteEventResponse is one row of the audit trail written by the worker pool.
type QuoteEventResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	UserID      string          `json:"user_id"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	TargetPrice decimal.Decimal `json:"target_price"`
	MinPrice    decimal.Decimal `json:"min_price"`
	CreatedAt   string          `json:"created_at"`
}
