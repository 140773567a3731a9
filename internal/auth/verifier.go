package auth

import (
	"context"
	"errors"
	"strings"

	"firebase.google.com/go/v4/auth"
)

// TokenVerifier validates a bearer token. *auth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// DevVerifier accepts any non-empty token and uses it as the user id.
// Use this ONLY for development/testing.
type DevVerifier struct{}

func (DevVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid := strings.TrimSpace(idToken)
	if uid == "" {
		return nil, errors.New("empty token")
	}
	return &auth.Token{
		UID: uid,
		Claims: map[string]interface{}{
			"email": uid + "@firebase.local",
		},
	}, nil
}
