package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mediculture/mediculture-backend/internal/platform/httpx"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

// ListMedicines returns one page of the active catalog.
func (h *Handler) ListMedicines(c *gin.Context) {
	result, err := h.medicineService.List(c.Request.Context(), query.MedicineParams{
		Page:                 c.Query("page"),
		Limit:                c.Query("limit"),
		Category:             c.Query("category"),
		Search:               c.Query("search"),
		SortBy:               c.Query("sortBy"),
		SortOrder:            c.Query("sortOrder"),
		PrescriptionRequired: c.Query("prescriptionRequired"),
	})
	if err != nil {
		httpx.Fail(c, err, "Failed to fetch medicines")
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetMedicine(c *gin.Context) {
	medicine, err := h.medicineService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err, "Failed to fetch medicine")
		return
	}

	c.JSON(http.StatusOK, medicine)
}

// ListCategories returns the distinct categories of active medicines.
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.medicineService.Categories(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}
