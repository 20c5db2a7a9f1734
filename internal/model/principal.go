package model

import "github.com/google/uuid"

// Principal is the authenticated caller resolved from the bearer token.
type Principal struct {
	UserID uuid.UUID
	Role   UserRole
}

func (p Principal) IsClient() bool {
	return p.Role == UserRoleClient
}

func (p Principal) IsWasher() bool {
	return p.Role == UserRoleWasher
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
