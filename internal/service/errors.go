package service

import (
	"errors"

	"itabus/internal/model"

	"github.com/google/uuid"
)

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes; everything else surfaces as a 400 with its message.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRatesNotConfigured = errors.New("global rates not configured")
)

// Caller identifies the authenticated user on whose behalf a service call
// runs. Handlers build it from JWT claims; services never read ambient
// session state.
type Caller struct {
	ID   uuid.UUID
	Role string
}

func (c Caller) IsAdmin() bool { return c.Role == model.RoleAdmin }
