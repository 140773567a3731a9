package domain

import (
	"strings"

	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
)

var (
	ErrMedicineNotFound = apperr.NotFound("Medicine not found")
	ErrNameRequired     = apperr.BadRequest("medicine name is required")
	ErrInvalidCategory  = apperr.BadRequest("category must be one of: " + strings.Join(Categories, ", "))
)
