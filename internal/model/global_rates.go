package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GlobalRates is the single record of percentage rates feeding the price
// formula. Exactly one row is expected; absence means "not configured".
// All fields are percentages on a 0–100 scale.
type GlobalRates struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfitMin        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	ProfitIdeal      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	AgencyCommission decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	BV               decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Taxes            decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	UpdatedAt        time.Time
}

func (GlobalRates) TableName() string { return "global_rates" }
