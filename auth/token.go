package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/user/grantflow-go/apperror"
	"github.com/user/grantflow-go/config"
)

// Token type discriminators carried in the token_type claim.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// tokenIssuer identifies this service in the iss claim.
const tokenIssuer = "grantflow"

// CustomClaims is the JWT payload: the subject username lives in the
// registered sub claim, the user id and token type are custom claims.
type CustomClaims struct {
	UserID    string `json:"id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited bearer tokens.
// Verification is stateless: validity is purely a function of signature and
// expiry, there is no server-side revocation list. The secret is read-only
// after construction, so a single instance is safe for concurrent use.
type TokenService struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	now             func() time.Time // injectable clock for expiry tests
}

// NewTokenService builds a TokenService from the auth configuration.
func NewTokenService(cfg *config.AuthConfig) *TokenService {
	return &TokenService{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		now:             time.Now,
	}
}

// WithClock replaces the service's clock. Tests use it to walk tokens across
// their expiry without sleeping.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// IssueAccessToken signs a short-lived access token for the given identity.
func (s *TokenService) IssueAccessToken(username string, id uuid.UUID) (string, error) {
	return s.issue(username, id, tokenTypeAccess, s.accessTokenTTL)
}

// IssueRefreshToken signs a long-lived refresh token for the given identity.
func (s *TokenService) IssueRefreshToken(username string, id uuid.UUID) (string, error) {
	return s.issue(username, id, tokenTypeRefresh, s.refreshTokenTTL)
}

// issue encodes the identity plus an absolute expiry of now+ttl into a
// compact HS256-signed token.
func (s *TokenService) issue(username string, id uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	issuedAt := s.now()
	claims := &CustomClaims{
		UserID:    id.String(),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.NewInternalError("failed to sign token", err)
	}
	return signed, nil
}

// VerifyAccessToken verifies an access token and returns the identity it
// asserts. Verification is all-or-nothing: a bad signature, malformed token,
// wrong token type, or passed expiry all yield the same authentication error.
func (s *TokenService) VerifyAccessToken(tokenString string) (*Identity, error) {
	return s.verify(tokenString, tokenTypeAccess)
}

// VerifyRefreshToken verifies a refresh token and returns its identity.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*Identity, error) {
	return s.verify(tokenString, tokenTypeRefresh)
}

func (s *TokenService) verify(tokenString, expectedType string) (*Identity, error) {
	claims := &CustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, apperror.NewAuthError("could not validate user", err)
	}
	if !token.Valid {
		return nil, apperror.NewAuthError("could not validate user", nil)
	}
	if claims.TokenType != expectedType {
		return nil, apperror.NewAuthError("could not validate user",
			fmt.Errorf("invalid token type: expected %s, got %s", expectedType, claims.TokenType))
	}
	if claims.Subject == "" || claims.UserID == "" {
		return nil, apperror.NewAuthError("could not validate user", nil)
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperror.NewAuthError("could not validate user", err)
	}

	return &Identity{Username: claims.Subject, ID: id}, nil
}
