package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/user/grantflow-go/apperror"
)

// Service implements registration, login, and token refresh on top of a
// UserStore and a TokenService. Dependencies arrive through the constructor;
// the service holds no mutable state of its own.
type Service struct {
	store  UserStore
	tokens *TokenService
	log    *slog.Logger
}

// NewService creates an auth Service.
func NewService(store UserStore, tokens *TokenService, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, tokens: tokens, log: log}
}

// Register creates a new user. The password must satisfy the strength policy;
// only its bcrypt hash is stored. Duplicate usernames are rejected both by
// the pre-insert check and, under concurrent registration, by the store's
// uniqueness constraint, which is the final authority.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := ValidatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	// Early duplicate check for a friendly fast path. The insert below still
	// handles the race where another registration lands between check and
	// commit.
	if _, err := s.store.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, apperror.NewConflictError("a user with this username already exists", nil)
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, apperror.NewDatabaseError("failed to check username", err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:       req.Username,
		HashedPassword: hashed,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, apperror.NewConflictError("a user with this username already exists", nil)
		}
		return nil, apperror.NewDatabaseError("user creation failed due to database error", err)
	}

	s.log.Info("user registered", "username", user.Username, "user_id", user.ID)
	return user, nil
}

// Login authenticates the credentials and issues tokens. An unknown username
// and a wrong password produce the identical error; the unknown-user path
// still performs a hash comparison so the two failures have comparable
// latency.
func (s *Service) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			CheckPassword(string(dummyHash), password)
			return nil, apperror.NewAuthError("could not validate user", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if !CheckPassword(user.HashedPassword, password) {
		return nil, apperror.NewAuthError("could not validate user", nil)
	}

	return s.issueTokens(user.Username, user)
}

// Refresh verifies a refresh token and mints a fresh access token for the
// same identity. The refresh token is returned unchanged; rotation is not
// implemented.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	identity, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(identity.Username, identity.ID)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}

// CurrentUser resolves a bearer token to the identity it asserts. Every
// protected operation uses this as its precondition guard.
func (s *Service) CurrentUser(tokenString string) (*Identity, error) {
	return s.tokens.VerifyAccessToken(tokenString)
}

func (s *Service) issueTokens(username string, user *User) (*TokenResponse, error) {
	accessToken, err := s.tokens.IssueAccessToken(username, user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(username, user.ID)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
	}, nil
}
