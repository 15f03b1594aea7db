package organizations

// CreateRequest is the payload for creating an organization. All three
// fields are required and must be non-empty.
type CreateRequest struct {
	Name        string `json:"organization_name" validate:"required" example:"Acme"`
	Address     string `json:"address" validate:"required" example:"1 Main St"`
	ContactInfo string `json:"contact_info" validate:"required" example:"555-0100"`
}

// UpdateRequest is the partial-update payload. Nil pointers mean "leave the
// field untouched"; only present fields are applied.
type UpdateRequest struct {
	Name        *string `json:"organization_name,omitempty"`
	Address     *string `json:"address,omitempty"`
	ContactInfo *string `json:"contact_info,omitempty"`
}

// empty reports whether the update carries no fields at all.
func (r UpdateRequest) empty() bool {
	return r.Name == nil && r.Address == nil && r.ContactInfo == nil
}

// ListParams carries the listing query: optional keyword filter plus
// pagination. A nil Limit means the parameter was absent and the service
// applies the default; an explicit 0 is a valid request for zero rows.
type ListParams struct {
	Keyword string
	Skip    int
	Limit   *int
}
