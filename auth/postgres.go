package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresUserStore is the pgx-backed UserStore.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a UserStore backed by the given pool.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

// CreateUser inserts a user row. A single INSERT is already atomic, so no
// explicit transaction is needed; a unique violation on the username
// constraint is mapped to ErrUsernameTaken so that the race between two
// concurrent registrations resolves to the same error as the pre-check.
func (s *PostgresUserStore) CreateUser(ctx context.Context, user *User) error {
	query := `INSERT INTO users (username, hashed_password, organization_id)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at, updated_at`

	err := s.pool.QueryRow(ctx, query, user.Username, user.HashedPassword, user.OrganizationID).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation &&
			strings.Contains(pgErr.ConstraintName, "username") {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// GetUserByUsername fetches a user by exact username match.
func (s *PostgresUserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query := `SELECT id, organization_id, username, hashed_password, created_at, updated_at
	          FROM users WHERE username = $1`

	var user User
	err := s.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.OrganizationID,
		&user.Username,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
