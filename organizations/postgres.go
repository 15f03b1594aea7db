package organizations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore is the pgx-backed Store.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error. Mutating operations use it so a failure partway through
// never leaves a half-applied row.
func (s *PostgresStore) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	// Rollback after a successful commit is a no-op.
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Insert(ctx context.Context, org *Organization) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		query := `INSERT INTO organizations (organization_name, address, contact_info)
		          VALUES ($1, $2, $3)
		          RETURNING id, created_at, updated_at`
		return tx.QueryRow(ctx, query, org.Name, org.Address, org.ContactInfo).
			Scan(&org.ID, &org.CreatedAt, &org.UpdatedAt)
	})
}

func (s *PostgresStore) List(ctx context.Context, keyword string, skip, limit int) ([]Organization, error) {
	query := `SELECT id, organization_name, address, contact_info, created_at, updated_at
	          FROM organizations`
	args := []interface{}{}

	if keyword != "" {
		query += ` WHERE organization_name ILIKE $1 ESCAPE '\'`
		args = append(args, "%"+escapeLikePattern(keyword)+"%")
	}
	query += fmt.Sprintf(" ORDER BY created_at, id OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, skip, limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orgs := []Organization{}
	for rows.Next() {
		var org Organization
		if err := rows.Scan(&org.ID, &org.Name, &org.Address, &org.ContactInfo,
			&org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*Organization, error) {
	query := `SELECT id, organization_name, address, contact_info, created_at, updated_at
	          FROM organizations WHERE id = $1`

	var org Organization
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.Address, &org.ContactInfo, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

// Update builds the SET clause from the fields present in patch, leaving
// unset fields untouched, and returns the refreshed record.
func (s *PostgresStore) Update(ctx context.Context, id uuid.UUID, patch UpdateRequest) (*Organization, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	appendSet := func(column string, value string) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}
	if patch.Name != nil {
		appendSet("organization_name", *patch.Name)
	}
	if patch.Address != nil {
		appendSet("address", *patch.Address)
	}
	if patch.ContactInfo != nil {
		appendSet("contact_info", *patch.ContactInfo)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE organizations SET %s WHERE id = $%d
	          RETURNING id, organization_name, address, contact_info, created_at, updated_at`,
		strings.Join(setClauses, ", "), argID)

	var org Organization
	err := s.withTx(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(
			&org.ID, &org.Name, &org.Address, &org.ContactInfo, &org.CreatedAt, &org.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	return &org, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrOrganizationNotFound
		}
		return nil
	})
}

// escapeLikePattern neutralizes LIKE metacharacters in user keywords so a
// search for "100%" matches literally.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
