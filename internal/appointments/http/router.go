package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup, optionalAuth gin.HandlerFunc) {
	rg.GET("", optionalAuth, h.ListAppointments)
	rg.POST("", optionalAuth, h.CreateAppointment)
	rg.GET("/:id", h.GetAppointment)
	rg.PATCH("/:id/status", h.UpdateStatus)
}
