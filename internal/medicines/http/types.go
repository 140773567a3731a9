package http

import "github.com/mediculture/mediculture-backend/internal/medicines/service"

type Handler struct {
	medicineService *service.MedicineService
}

func New(medicineService *service.MedicineService) *Handler {
	return &Handler{
		medicineService: medicineService,
	}
}
