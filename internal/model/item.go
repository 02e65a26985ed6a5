package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Billing periods accepted for Item.Period.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Item is one node of the 3-level cost catalog. A nil Cost means the item's
// value is derived by summing its children; a non-nil Cost is authoritative
// even when children exist. Parent links always point one level up
// (parent.Level == Level-1), so parent chains cannot cycle.
type Item struct {
	ID       uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string           `gorm:"index;not null"`
	Level    int              `gorm:"not null"`
	ParentID *uuid.UUID       `gorm:"type:uuid;index"`
	Cost     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Period qualifies Duration on project lines: "week" | "month"
	Period    *string `gorm:"type:varchar(10)"`
	CreatedAt time.Time

	Parent *Item `gorm:"foreignKey:ParentID"`
}

func (Item) TableName() string { return "items" }
