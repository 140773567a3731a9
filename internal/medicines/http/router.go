package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListMedicines)
	rg.GET("/categories/list", h.ListCategories)
	rg.GET("/:id", h.GetMedicine)
}
