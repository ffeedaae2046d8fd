// Package identity verifies third-party identity tokens.
package identity

import (
	"context"

	"gatherly/internal/models"

	"google.golang.org/api/idtoken"
)

// Identity is the subset of verified token claims the app cares about.
type Identity struct {
	Email string
	Name  string
}

// Verifier validates an opaque identity token and returns the claims.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// GoogleVerifier validates Google ID tokens against a client ID audience.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier returns a verifier bound to the given OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{clientID: clientID}
}

// Verify validates the token signature, expiry, and audience. Any failure
// is reported as an unauthorized error without detail, so callers cannot
// distinguish forged from expired tokens.
func (v *GoogleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid identity token")
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, models.NewUnauthorizedError("Identity token missing email claim")
	}
	name, _ := payload.Claims["name"].(string)

	return &Identity{Email: email, Name: name}, nil
}
