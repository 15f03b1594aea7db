package organizations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/grantflow-go/auth"
	"github.com/user/grantflow-go/config"
	"github.com/user/grantflow-go/organizations"
)

// testStore is a map-backed Store; this package tests the routes from the
// outside, so it carries its own copy rather than reaching into internals.
type testStore struct {
	orgs map[uuid.UUID]organizations.Organization
	now  time.Time
}

func newTestStore() *testStore {
	return &testStore{
		orgs: make(map[uuid.UUID]organizations.Organization),
		now:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *testStore) Insert(_ context.Context, org *organizations.Organization) error {
	org.ID = uuid.New()
	org.CreatedAt = s.now
	org.UpdatedAt = s.now
	s.now = s.now.Add(time.Second)
	s.orgs[org.ID] = *org
	return nil
}

func (s *testStore) List(_ context.Context, keyword string, skip, limit int) ([]organizations.Organization, error) {
	all := make([]organizations.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		if keyword != "" && !strings.Contains(strings.ToLower(org.Name), strings.ToLower(keyword)) {
			continue
		}
		all = append(all, org)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	if skip >= len(all) {
		return []organizations.Organization{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (s *testStore) Get(_ context.Context, id uuid.UUID) (*organizations.Organization, error) {
	org, ok := s.orgs[id]
	if !ok {
		return nil, organizations.ErrOrganizationNotFound
	}
	return &org, nil
}

func (s *testStore) Update(_ context.Context, id uuid.UUID, patch organizations.UpdateRequest) (*organizations.Organization, error) {
	org, ok := s.orgs[id]
	if !ok {
		return nil, organizations.ErrOrganizationNotFound
	}
	if patch.Name != nil {
		org.Name = *patch.Name
	}
	if patch.Address != nil {
		org.Address = *patch.Address
	}
	if patch.ContactInfo != nil {
		org.ContactInfo = *patch.ContactInfo
	}
	org.UpdatedAt = s.now
	s.now = s.now.Add(time.Second)
	s.orgs[id] = org
	return &org, nil
}

func (s *testStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.orgs[id]; !ok {
		return organizations.ErrOrganizationNotFound
	}
	delete(s.orgs, id)
	return nil
}

// newTestRouter wires the organization routes behind the auth middleware,
// the same shape main.go uses, and returns a bearer token for requests.
func newTestRouter(t *testing.T) (*chi.Mux, string) {
	t.Helper()

	tokens := auth.NewTokenService(&config.AuthConfig{
		JWTSecret:       "handlers-test-secret",
		Algorithm:       "HS256",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	token, err := tokens.IssueAccessToken("alice", uuid.New())
	require.NoError(t, err)

	handlers := organizations.NewHandlers(organizations.NewService(newTestStore()))

	r := chi.NewRouter()
	r.Route("/organizations", func(r chi.Router) {
		r.Use(auth.Middleware(tokens))
		handlers.RegisterRoutes(r)
	})
	return r, token
}

func doJSON(t *testing.T, router http.Handler, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createOrganization(t *testing.T, router http.Handler, token, name string) organizations.Organization {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/organizations/", token, organizations.CreateRequest{
		Name:        name,
		Address:     "1 Main St",
		ContactInfo: "555-0100",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var org organizations.Organization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &org))
	return org
}

func TestOrganizationRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, tc := range []struct {
		method string
		target string
	}{
		{http.MethodPost, "/organizations/"},
		{http.MethodGet, "/organizations/"},
		{http.MethodGet, "/organizations/" + uuid.NewString()},
		{http.MethodPut, "/organizations/" + uuid.NewString()},
		{http.MethodDelete, "/organizations/" + uuid.NewString()},
	} {
		rec := doJSON(t, router, tc.method, tc.target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s without token", tc.method, tc.target)
	}
}

func TestCreateOrganization(t *testing.T) {
	router, token := newTestRouter(t)

	org := createOrganization(t, router, token, "Acme")

	assert.NotEqual(t, uuid.Nil, org.ID)
	assert.Equal(t, "Acme", org.Name)
	assert.Equal(t, "1 Main St", org.Address)
	assert.Equal(t, "555-0100", org.ContactInfo)
	assert.True(t, org.CreatedAt.Equal(org.UpdatedAt))

	t.Run("missing field is rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/organizations/", token, map[string]string{
			"organization_name": "NoAddress",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListOrganizations(t *testing.T) {
	router, token := newTestRouter(t)
	for i := 0; i < 7; i++ {
		createOrganization(t, router, token, fmt.Sprintf("Org %d", i))
	}
	createOrganization(t, router, token, "EcoWorks")

	decode := func(rec *httptest.ResponseRecorder) []organizations.Organization {
		t.Helper()
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var orgs []organizations.Organization
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orgs))
		return orgs
	}

	t.Run("default page size is 5", func(t *testing.T) {
		orgs := decode(doJSON(t, router, http.MethodGet, "/organizations/", token, nil))
		assert.Len(t, orgs, 5)
		assert.Equal(t, "Org 0", orgs[0].Name)
	})

	t.Run("skip and limit page through", func(t *testing.T) {
		orgs := decode(doJSON(t, router, http.MethodGet, "/organizations/?skip=6&limit=10", token, nil))
		require.Len(t, orgs, 2)
		assert.Equal(t, "Org 6", orgs[0].Name)
		assert.Equal(t, "EcoWorks", orgs[1].Name)
	})

	t.Run("explicit limit=0 returns no rows", func(t *testing.T) {
		orgs := decode(doJSON(t, router, http.MethodGet, "/organizations/?limit=0", token, nil))
		assert.Empty(t, orgs, "limit=0 is a valid request for zero rows, not the default page")
	})

	t.Run("oversized limit is accepted", func(t *testing.T) {
		orgs := decode(doJSON(t, router, http.MethodGet, "/organizations/?limit=1000", token, nil))
		assert.Len(t, orgs, 8)
	})

	t.Run("keyword filters names", func(t *testing.T) {
		orgs := decode(doJSON(t, router, http.MethodGet, "/organizations/?keyword=eco", token, nil))
		require.Len(t, orgs, 1)
		assert.Equal(t, "EcoWorks", orgs[0].Name)
	})

	t.Run("non-integer limit is rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/organizations/?limit=lots", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("negative skip is rejected", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/organizations/?skip=-1", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetOrganization(t *testing.T) {
	router, token := newTestRouter(t)
	created := createOrganization(t, router, token, "Acme")

	rec := doJSON(t, router, http.MethodGet, "/organizations/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got organizations.Organization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Acme", got.Name)

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/organizations/"+uuid.NewString(), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/organizations/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateOrganization(t *testing.T) {
	router, token := newTestRouter(t)
	created := createOrganization(t, router, token, "Acme")

	rec := doJSON(t, router, http.MethodPut, "/organizations/"+created.ID.String(), token, map[string]string{
		"address": "2 Side St",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated organizations.Organization
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Acme", updated.Name, "untouched field survives a partial update")
	assert.Equal(t, "2 Side St", updated.Address)
	assert.Equal(t, "555-0100", updated.ContactInfo)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	t.Run("unknown id is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/organizations/"+uuid.NewString(), token, map[string]string{
			"address": "nowhere",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteOrganization(t *testing.T) {
	router, token := newTestRouter(t)
	created := createOrganization(t, router, token, "Acme")

	rec := doJSON(t, router, http.MethodDelete, "/organizations/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/organizations/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/organizations/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "repeated delete reports not found")
}
