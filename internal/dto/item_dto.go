package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateItemRequest struct {
	Name     string           `json:"name"      validate:"required,min=2,max=200"`
	Level    int              `json:"level"     validate:"required,min=1,max=3"`
	ParentID *string          `json:"parent_id" validate:"omitempty,uuid"`
	Cost     *decimal.Decimal `json:"cost"`
	Period   *string          `json:"period"    validate:"omitempty,oneof=week month"`
}

type UpdateItemRequest struct {
	Name   *string          `json:"name"   validate:"omitempty,min=2,max=200"`
	Cost   *decimal.Decimal `json:"cost"`
	Period *string          `json:"period" validate:"omitempty,oneof=week month"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// ItemFilter is bound from the query string of GET /v1/items.
// ParentID accepts a UUID or the sentinel "null" to select root items.
type ItemFilter struct {
	Level    int    `form:"level"     validate:"omitempty,min=1,max=3"`
	ParentID string `form:"parent_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ItemResponse carries the stored fields plus TotalCost, the recursively
// derived cost of the node, and the full children subtree.
type ItemResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Level     int              `json:"level"`
	ParentID  *string          `json:"parent_id"`
	Cost      *decimal.Decimal `json:"cost"`
	Period    *string          `json:"period"`
	TotalCost decimal.Decimal  `json:"total_cost"`
	Children  []ItemResponse   `json:"children,omitempty"`
	CreatedAt string           `json:"created_at"`
}
