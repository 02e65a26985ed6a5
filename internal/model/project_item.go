package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectItem is one (item, quantity, duration) line within a project.
// UnitCost snapshots the catalog item's direct cost at creation time;
// TotalCost = UnitCost × Quantity × Duration. Duration is counted in weeks or
// months depending on the referenced item's period.
type ProjectItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProjectID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ItemID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity  int             `gorm:"not null;default:1"`
	Duration  int             `gorm:"not null;default:1"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCost decimal.Decimal `gorm:"type:decimal(14,2);not null"`

	Item *Item `gorm:"foreignKey:ItemID"`
}

func (ProjectItem) TableName() string { return "project_items" }
