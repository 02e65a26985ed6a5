package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project is a named set of catalog selections belonging to a user.
// TotalCost/TargetPrice/MinPrice are computed once at creation time and
// persisted — they are never recomputed on read.
type Project struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"not null"`
	UserID      uuid.UUID       `gorm:"type:uuid;index;not null"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	TargetPrice decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	MinPrice    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	CreatedAt   time.Time

	User  *User         `gorm:"foreignKey:UserID"`
	Items []ProjectItem `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

func (Project) TableName() string { return "projects" }
