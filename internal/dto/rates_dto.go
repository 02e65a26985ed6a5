package dto

import "github.com/shopspring/decimal"

// UpdateRatesRequest updates the global rate record. Omitted fields keep
// their stored value. Per-field bounds only — the cross-field constraint
// (percentage sum below 100) is enforced at calculation time.
type UpdateRatesRequest struct {
	ProfitMin        *decimal.Decimal `json:"profit_min"        validate:"omitempty,min=0,max=100"`
	ProfitIdeal      *decimal.Decimal `json:"profit_ideal"      validate:"omitempty,min=0,max=100"`
	AgencyCommission *decimal.Decimal `json:"agency_commission" validate:"omitempty,min=0,max=100"`
	BV               *decimal.Decimal `json:"bv"                validate:"omitempty,min=0,max=100"`
	Taxes            *decimal.Decimal `json:"taxes"             validate:"omitempty,min=0,max=100"`
}

// RatesResponse mirrors the stored record. Configured is false when no rate
// record exists yet — all percentages read as zero in that case.
type RatesResponse struct {
	ProfitMin        decimal.Decimal `json:"profit_min"`
	ProfitIdeal      decimal.Decimal `json:"profit_ideal"`
	AgencyCommission decimal.Decimal `json:"agency_commission"`
	BV               decimal.Decimal `json:"bv"`
	Taxes            decimal.Decimal `json:"taxes"`
	Configured       bool            `json:"configured"`
	UpdatedAt        *string         `json:"updated_at"`
}
