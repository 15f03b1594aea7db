package auth

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required" example:"Sup3r$ecret"`
}

// RegisterResponse acknowledges a successful registration.
type RegisterResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Message string `json:"message" example:"User created"`
}

// TokenResponse is returned on successful login or refresh.
// TokenType is always "bearer".
type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type" example:"bearer"`
}

// RefreshTokenRequest carries the refresh token used to mint a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// CurrentUserResponse wraps the authenticated identity for GET /user/me.
type CurrentUserResponse struct {
	User Identity `json:"user"`
}
