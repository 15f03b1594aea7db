// Package organizations implements CRUD over organization records: creation,
// keyword-filtered listing with pagination, retrieval, partial update, and
// deletion. Every operation requires an authenticated caller; there is no
// per-record ownership beyond that.
package organizations

import (
	"time"

	"github.com/google/uuid"
)

// Organization is an organization record as stored in the organizations
// table. The three text fields are always present (NOT NULL in the schema);
// timestamps are maintained by the database.
type Organization struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"organization_name"`
	Address     string    `json:"address"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
