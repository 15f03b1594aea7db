// Package auth contains authentication logic: user registration, login,
// token issuance and verification, and the middleware guarding protected
// routes.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record as stored in the users table.
// The password hash is produced by a one-way salted algorithm at creation
// and is never serialized into API responses.
type User struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"` // optional owning organization
	Username       string     `json:"username"`
	HashedPassword string     `json:"-"` // never exposed
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Identity is the authenticated caller as asserted by a verified token:
// the subject username and user id, nothing more. Protected handlers receive
// it through the request context.
type Identity struct {
	Username string    `json:"username"`
	ID       uuid.UUID `json:"id"`
}
