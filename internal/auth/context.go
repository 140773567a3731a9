package auth

import (
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID   = "firebase_uid"
	CtxEmail         = "email"
	CtxDisplayName   = "display_name"
	CtxFirebaseToken = "firebase_token"
)

// Identity is the verified caller as seen by handlers.
type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

// SetToken stores the verified token claims on the gin context.
func SetToken(c *gin.Context, token *auth.Token) {
	c.Set(CtxFirebaseUID, token.UID)

	// Extract email from claims if available
	if email, ok := token.Claims["email"].(string); ok {
		c.Set(CtxEmail, email)
	}
	if name, ok := token.Claims["name"].(string); ok {
		c.Set(CtxDisplayName, name)
	}

	// Store the full token for access to other claims if needed
	c.Set(CtxFirebaseToken, token)
}

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by the Firebase auth middlewares
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// CurrentIdentity returns the verified caller, if any.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	uid := UserFirebaseUID(c)
	if uid == "" {
		return Identity{}, false
	}
	return Identity{
		UID:         uid,
		Email:       strings.TrimSpace(c.GetString(CtxEmail)),
		DisplayName: strings.TrimSpace(c.GetString(CtxDisplayName)),
	}, true
}
