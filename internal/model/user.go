package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values accepted for User.Role.
const (
	RoleAdmin     = "admin"
	RoleComercial = "comercial"
)

// User stores system users with role-based access.
// Role: "admin" | "comercial"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null;default:'comercial'"`
	CreatedAt    time.Time

	Projects []Project `gorm:"foreignKey:UserID"`
}

func (User) TableName() string { return "users" }
