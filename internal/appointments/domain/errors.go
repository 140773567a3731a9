package domain

import (
	"strings"

	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
)

var (
	ErrAppointmentNotFound = apperr.NotFound("Appointment not found")
	ErrInvalidStatus       = apperr.BadRequest("status must be one of: " + strings.Join(Statuses, ", "))
)
