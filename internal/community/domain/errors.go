package domain

import (
	"strings"

	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
)

var (
	ErrPostNotFound    = apperr.NotFound("Post not found")
	ErrInvalidCategory = apperr.BadRequest("category must be one of: " + strings.Join(Categories, ", "))
)
