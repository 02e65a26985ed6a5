// Package pricing implements the markup-on-revenue sell-price formula.
// The functions here are pure: same inputs, same outputs, no stored state.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidRates is returned when the percentage sum reaches 100 or more,
// which would drive the denominator to zero or below.
var ErrInvalidRates = errors.New("invalid rates configuration")

var hundred = decimal.NewFromInt(100)

// Rates is the percentage set consumed by the formula. Taxes, agency
// commission and BV are shared between scenarios; profit varies between the
// ideal and minimum scenarios.
type Rates struct {
	ProfitMin        decimal.Decimal
	ProfitIdeal      decimal.Decimal
	AgencyCommission decimal.Decimal
	BV               decimal.Decimal
	Taxes            decimal.Decimal
}

// Quote holds both derived sell prices for a given total cost.
type Quote struct {
	TargetPrice decimal.Decimal
	MinPrice    decimal.Decimal
}

// Price computes totalCost / (1 - (profit+taxes+commission+bv)/100).
//
// This is markup on revenue, not on cost: every percentage point shrinks the
// denominator, so the price grows non-linearly and approaches infinity as the
// sum approaches 100. A denominator of zero or below is rejected rather than
// producing an infinite or negative price.
func Price(totalCost, profit, taxes, commission, bv decimal.Decimal) (decimal.Decimal, error) {
	sum := profit.Add(taxes).Add(commission).Add(bv)
	denominator := decimal.NewFromInt(1).Sub(sum.Div(hundred))
	if denominator.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidRates
	}
	return totalCost.Div(denominator), nil
}

// Evaluate runs the formula twice — once with the ideal profit for the target
// price, once with the minimum profit for the floor price. The returned error
// names the scenario whose denominator was non-positive.
func Evaluate(totalCost decimal.Decimal, rates Rates) (Quote, error) {
	target, err := Price(totalCost, rates.ProfitIdeal, rates.Taxes, rates.AgencyCommission, rates.BV)
	if err != nil {
		return Quote{}, fmt.Errorf("ideal scenario: %w", err)
	}
	min, err := Price(totalCost, rates.ProfitMin, rates.Taxes, rates.AgencyCommission, rates.BV)
	if err != nil {
		return Quote{}, fmt.Errorf("minimum scenario: %w", err)
	}
	return Quote{TargetPrice: target, MinPrice: min}, nil
}
