package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediculture/mediculture-backend/internal/auth"
	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
	"github.com/mediculture/mediculture-backend/internal/platform/httpx"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

// ListAppointments returns the appointments of ?firebaseUid, or of the
// caller when the query names nobody.
func (h *Handler) ListAppointments(c *gin.Context) {
	uid := c.Query("firebaseUid")
	if uid == "" {
		uid = auth.UserFirebaseUID(c)
	}

	result, err := h.appointmentService.List(c.Request.Context(), query.AppointmentParams{
		FirebaseUID: uid,
		Status:      c.Query("status"),
		Page:        c.Query("page"),
		Limit:       c.Query("limit"),
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to fetch appointments")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	appt, err := h.appointmentService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err, "Failed to fetch appointment")
		return
	}

	c.JSON(http.StatusOK, appt)
}

// CreateAppointment books an appointment. An authenticated caller always
// books for themselves.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var in AppointmentInput
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, err, "Failed to create appointment")
		return
	}

	appt, err := in.toDomain()
	if err != nil {
		httpx.Fail(c, err, "Failed to create appointment")
		return
	}

	if uid := auth.UserFirebaseUID(c); uid != "" {
		if appt.UserID != "" && appt.UserID != uid {
			httpx.Fail(c, apperr.Forbidden("userId does not match the authenticated user"), "")
			return
		}
		appt.UserID = uid
	}

	created, err := h.appointmentService.Create(c.Request.Context(), appt)
	if err != nil {
		httpx.Fail(c, err, "Failed to create appointment")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateStatus sets the appointment status without checking the transition.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var in StatusInput
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, err, "Failed to update appointment")
		return
	}

	appt, err := h.appointmentService.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		httpx.Fail(c, err, "Failed to update appointment")
		return
	}

	c.JSON(http.StatusOK, appt)
}
