package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mediculture/mediculture-backend/internal/auth"
	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
	"github.com/mediculture/mediculture-backend/internal/platform/httpx"
	"github.com/mediculture/mediculture-backend/internal/users/domain"
)

// GetProfile returns a profile. Authenticated callers get their own; anonymous
// callers must name one with ?firebaseUid.
func (h *Handler) GetProfile(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		uid = c.Query("firebaseUid")
	}

	user, err := h.userService.GetProfile(c.Request.Context(), uid)
	if err != nil {
		httpx.Fail(c, err, "Failed to fetch user profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// SaveProfile creates or updates the caller's profile.
// email and displayName come from the body when sent, else from the token.
func (h *Handler) SaveProfile(c *gin.Context) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var in ProfileInput
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, err, "Failed to update user profile")
		return
	}
	if in.FirebaseUID != "" && strings.TrimSpace(in.FirebaseUID) != id.UID {
		httpx.Fail(c, apperr.Forbidden("firebaseUid does not match the authenticated user"), "")
		return
	}

	update, err := in.toUpdate()
	if err != nil {
		httpx.Fail(c, err, "Failed to update user profile")
		return
	}
	update.FirebaseUID = id.UID
	update.Email = firstNonEmpty(in.Email, id.Email)
	update.DisplayName = firstNonEmpty(in.DisplayName, id.DisplayName)

	user, err := h.userService.SaveProfile(c.Request.Context(), update)
	if err != nil {
		httpx.Fail(c, err, "Failed to update user profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdatePreferences changes only the preference fields in the body.
func (h *Handler) UpdatePreferences(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var in PreferencesInput
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, err, "Failed to update preferences")
		return
	}

	prefs, err := h.userService.UpdatePreferences(c.Request.Context(), uid, domain.PreferencesUpdate{
		Notifications: in.Notifications,
		Language:      in.Language,
		Theme:         in.Theme,
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to update preferences")
		return
	}

	c.JSON(http.StatusOK, prefs)
}

// UpdateHealthStats replaces the health stats of the caller, or of the body's
// firebaseUid when the request is anonymous.
func (h *Handler) UpdateHealthStats(c *gin.Context) {
	var in HealthStatsInput
	if err := httpx.BindJSON(c, &in); err != nil {
		httpx.Fail(c, err, "Failed to update health stats")
		return
	}

	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		uid = in.FirebaseUID
	} else if in.FirebaseUID != "" && strings.TrimSpace(in.FirebaseUID) != uid {
		httpx.Fail(c, apperr.Forbidden("firebaseUid does not match the authenticated user"), "")
		return
	}

	stats, err := h.userService.UpdateHealthStats(c.Request.Context(), uid, in.HealthStats.toDomain())
	if err != nil {
		httpx.Fail(c, err, "Failed to update health stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
