package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mediculture/mediculture-backend/internal/auth"
)

const (
	msgMissingToken = "Access token required"
	msgInvalidToken = "Invalid or expired token"
)

// FirebaseAuthMiddleware rejects requests without a valid bearer token:
// 401 when the token is missing, 403 when verification fails.
func FirebaseAuthMiddleware(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgMissingToken})
			return
		}

		if !verify(c, verifier, token) {
			return
		}
		c.Next()
	}
}

// OptionalFirebaseAuth verifies a bearer token when one is sent and lets
// anonymous requests through. A bad token is still rejected with 403.
func OptionalFirebaseAuth(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		if !verify(c, verifier, token) {
			return
		}
		c.Next()
	}
}

func verify(c *gin.Context, verifier auth.TokenVerifier, token string) bool {
	decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("token verification failed")
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgInvalidToken})
		return false
	}

	auth.SetToken(c, decoded)

	// tag later log lines with the caller
	logger := zerolog.Ctx(c.Request.Context()).With().Str("uid", decoded.UID).Logger()
	c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
	return true
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
