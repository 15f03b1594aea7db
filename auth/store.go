package auth

import (
	"context"
	"errors"
)

// Sentinel errors returned by UserStore implementations. The service layer
// translates them into apperror types; keeping them as plain sentinels keeps
// store implementations (and test doubles) free of HTTP concerns.
var (
	// ErrUsernameTaken reports a username uniqueness violation. The store
	// returns it both from the pre-insert existence check and when the
	// database's unique constraint rejects the row at commit time; the
	// constraint is the final authority under concurrent registration.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrUserNotFound reports that no user matched the lookup.
	ErrUserNotFound = errors.New("user not found")
)

// UserStore persists user records.
type UserStore interface {
	// CreateUser inserts the user and fills in the generated id and
	// timestamps. Returns ErrUsernameTaken when the username is already
	// present.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByUsername fetches a user by exact, case-sensitive username.
	// Returns ErrUserNotFound when no row matches.
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}
