package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quote event kinds.
const (
	QuoteKindProject    = "project"
	QuoteKindSimulation = "simulation"
)

// QuoteEvent is an audit record of a priced evaluation — either a persisted
// project creation or a stateless what-if simulation. Rows are written
// asynchronously by the worker pool; pricing never depends on them.
type QuoteEvent struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Kind        string          `gorm:"type:varchar(20);not null"`
	UserID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	TargetPrice decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	MinPrice    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CreatedAt   time.Time
}

func (QuoteEvent) TableName() string { return "quote_events" }
