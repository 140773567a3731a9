package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	rg.GET("/profile", optionalAuth, h.GetProfile)
	rg.POST("/profile", requireAuth, h.SaveProfile)
	rg.PATCH("/preferences", requireAuth, h.UpdatePreferences)
	rg.PATCH("/health-stats", optionalAuth, h.UpdateHealthStats)
}
