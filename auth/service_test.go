package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/grantflow-go/apperror"
)

// mockUserStore is a function-field test double for UserStore.
type mockUserStore struct {
	createUserFn        func(ctx context.Context, user *User) error
	getUserByUsernameFn func(ctx context.Context, username string) (*User, error)
}

func (m *mockUserStore) CreateUser(ctx context.Context, user *User) error {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	user.ID = uuid.New()
	return nil
}

func (m *mockUserStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	if m.getUserByUsernameFn != nil {
		return m.getUserByUsernameFn(ctx, username)
	}
	return nil, ErrUserNotFound
}

var _ UserStore = (*mockUserStore)(nil)

// memoryUserStore is an in-memory UserStore for flows that need real
// persistence semantics (duplicate detection, register-then-login).
type memoryUserStore struct {
	users map[string]*User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]*User)}
}

func (m *memoryUserStore) CreateUser(_ context.Context, user *User) error {
	if _, exists := m.users[user.Username]; exists {
		return ErrUsernameTaken
	}
	user.ID = uuid.New()
	stored := *user
	m.users[user.Username] = &stored
	return nil
}

func (m *memoryUserStore) GetUserByUsername(_ context.Context, username string) (*User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func newTestService(store UserStore) *Service {
	return NewService(store, NewTokenService(testAuthConfig()), nil)
}

func TestRegisterThenLoginRoundTrip(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestService(store)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "Sup3r$ecret"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	// Only the hash is stored, never the plaintext.
	assert.NotEqual(t, "Sup3r$ecret", user.HashedPassword)
	assert.NotEmpty(t, user.HashedPassword)

	resp, err := svc.Login(ctx, "alice", "Sup3r$ecret")
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	// The issued token round-trips to the same username and id.
	identity, err := svc.CurrentUser(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, user.ID, identity.ID)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "weak"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	// Nothing was persisted.
	assert.Empty(t, store.users)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "Sup3r$ecret"})
	require.NoError(t, err)

	// Same username with any valid password fails; the row count is unchanged.
	_, err = svc.Register(ctx, RegisterRequest{Username: "alice", Password: "An0ther$ecret"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
	assert.Len(t, store.users, 1)
}

func TestRegisterDuplicateLostRace(t *testing.T) {
	// The pre-insert existence check passes, but the store's uniqueness
	// constraint rejects the insert at commit time. The caller still sees a
	// duplicate-username conflict, not a generic database failure.
	store := &mockUserStore{
		getUserByUsernameFn: func(context.Context, string) (*User, error) {
			return nil, ErrUserNotFound
		},
		createUserFn: func(context.Context, *User) error {
			return ErrUsernameTaken
		},
	}
	svc := newTestService(store)

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "alice", Password: "Sup3r$ecret"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflictError(err))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "Sup3r$ecret"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "Wr0ng$ecret")
	_, unknownUser := svc.Login(ctx, "nobody", "Sup3r$ecret")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.True(t, apperror.IsAuthError(wrongPassword))
	assert.True(t, apperror.IsAuthError(unknownUser))
	// Identical error kind and message: no username-enumeration signal.
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "Sup3r$ecret"})
	require.NoError(t, err)
	login, err := svc.Login(ctx, "alice", "Sup3r$ecret")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.RefreshToken, refreshed.RefreshToken)

	identity, err := svc.CurrentUser(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	store := newMemoryUserStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{Username: "alice", Password: "Sup3r$ecret"})
	require.NoError(t, err)
	login, err := svc.Login(ctx, "alice", "Sup3r$ecret")
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, login.AccessToken)
	require.Error(t, err)
	assert.True(t, apperror.IsAuthError(err))
}
