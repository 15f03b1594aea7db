package organizations

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/user/grantflow-go/apperror"
	"github.com/user/grantflow-go/auth"
)

// Handlers exposes the organizations service over HTTP. The routes are
// mounted behind the auth middleware, so every handler can assume an
// authenticated caller.
type Handlers struct {
	service *Service
}

// NewHandlers creates the organizations Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the CRUD routes on the given router group.
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Post("/", h.HandleCreate())
	r.Get("/", h.HandleList())
	r.Get("/{organizationID}", h.HandleGet())
	r.Put("/{organizationID}", h.HandleUpdate())
	r.Delete("/{organizationID}", h.HandleDelete())
}

// HandleCreate godoc
// @Summary Create an organization
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param organization body organizations.CreateRequest true "Organization fields"
// @Success 201 {object} organizations.Organization
// @Failure 400 {object} apperror.ErrorResponse "Missing or empty field"
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Router /organizations/ [post]
func (h *Handlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		org, err := h.service.Create(r.Context(), req)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, org)
	}
}

// HandleList godoc
// @Summary List organizations
// @Description Lists organizations ordered by creation time. An optional keyword filters by case-insensitive substring match on the name. Limit defaults to 5 and is capped at 100.
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "Name filter"
// @Param skip query int false "Rows to skip" default(0)
// @Param limit query int false "Page size" default(5)
// @Success 200 {array} organizations.Organization
// @Failure 400 {object} apperror.ErrorResponse "Negative skip or limit"
// @Failure 401 {object} apperror.ErrorResponse "Unauthenticated"
// @Router /organizations/ [get]
func (h *Handlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := ListParams{Keyword: r.URL.Query().Get("keyword")}

		var err error
		if params.Skip, err = queryInt(r, "skip", 0); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if params.Limit, err = queryIntOptional(r, "limit"); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		orgs, err := h.service.List(r.Context(), params)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, orgs)
	}
}

// HandleGet godoc
// @Summary Fetch one organization
// @Tags organizations
// @Produce json
// @Security BearerAuth
// @Param organizationID path string true "Organization id"
// @Success 200 {object} organizations.Organization
// @Failure 404 {object} apperror.ErrorResponse "Organization not found"
// @Router /organizations/{organizationID} [get]
func (h *Handlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		org, err := h.service.Get(r.Context(), id)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, org)
	}
}

// HandleUpdate godoc
// @Summary Update an organization
// @Description Applies only the fields present in the body; unset fields are left untouched.
// @Tags organizations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param organizationID path string true "Organization id"
// @Param patch body organizations.UpdateRequest true "Fields to update"
// @Success 200 {object} organizations.Organization
// @Failure 404 {object} apperror.ErrorResponse "Organization not found"
// @Router /organizations/{organizationID} [put]
func (h *Handlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		var patch UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			auth.WriteError(w, r, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil))
			return
		}
		defer r.Body.Close()

		org, err := h.service.Update(r.Context(), id, patch)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, org)
	}
}

// HandleDelete godoc
// @Summary Delete an organization
// @Tags organizations
// @Security BearerAuth
// @Param organizationID path string true "Organization id"
// @Success 204 "Deleted"
// @Failure 404 {object} apperror.ErrorResponse "Organization not found"
// @Router /organizations/{organizationID} [delete]
func (h *Handlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}

		if err := h.service.Delete(r.Context(), id); err != nil {
			auth.WriteError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// pathID parses the organization id path parameter. A malformed id cannot
// name any record, so it reports NotFound rather than a validation error,
// keeping the route contract to "record or 404".
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "organizationID"))
	if err != nil {
		return uuid.Nil, apperror.NewNotFoundError("Organization not found", err)
	}
	return id, nil
}

// queryInt parses an integer query parameter, falling back to the default
// when absent.
func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError(name+" must be an integer", err)
	}
	return value, nil
}

// queryIntOptional parses an integer query parameter, reporting absence as
// nil. An explicit 0 stays 0; only a missing parameter lets the service
// apply its default.
func queryIntOptional(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.NewValidationError(name+" must be an integer", err)
	}
	return &value, nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
		}
	}
}
