package domain

import "github.com/mediculture/mediculture-backend/internal/platform/apperr"

var (
	ErrUserNotFound      = apperr.NotFound("User not found")
	ErrEmailTaken        = apperr.Conflict("email already exists")
	ErrFirebaseUIDNeeded = apperr.BadRequest("Firebase UID is required")
	ErrEmailRequired     = apperr.BadRequest("email is required")
	ErrDisplayNameNeeded = apperr.BadRequest("displayName is required")
	ErrNoPreferences     = apperr.BadRequest("no preference fields provided")
)
