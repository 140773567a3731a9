package http

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediculture/mediculture-backend/internal/appointments/domain"
	"github.com/mediculture/mediculture-backend/internal/appointments/service"
	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
	"github.com/mediculture/mediculture-backend/internal/platform/httpx"
)

func init() {
	httpx.RegisterEnum("appointmenttype", domain.Types)
	httpx.RegisterEnum("appointmentstatus", domain.Statuses)
}

type Handler struct {
	appointmentService *service.AppointmentService
}

func New(appointmentService *service.AppointmentService) *Handler {
	return &Handler{
		appointmentService: appointmentService,
	}
}

// AppointmentInput is the body of POST /api/appointments.
type AppointmentInput struct {
	UserID          string             `json:"userId,omitempty"`
	DoctorID        string             `json:"doctorId,omitempty"`
	DoctorName      string             `json:"doctorName" binding:"required"`
	Specialty       string             `json:"specialty" binding:"required"`
	AppointmentDate string             `json:"appointmentDate" binding:"required"`
	TimeSlot        string             `json:"timeSlot" binding:"required"`
	Type            string             `json:"type,omitempty" binding:"omitempty,appointmenttype"`
	Symptoms        []string           `json:"symptoms,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	Status          string             `json:"status,omitempty" binding:"omitempty,appointmentstatus"`
	Fees            *FeesInput         `json:"fees,omitempty"`
	Prescription    *PrescriptionInput `json:"prescription,omitempty"`
}

type FeesInput struct {
	Consultation float64 `json:"consultation" binding:"gte=0"`
	Total        float64 `json:"total" binding:"gte=0"`
}

type PrescriptionInput struct {
	Medicines    []PrescribedMedicineInput `json:"medicines,omitempty" binding:"dive"`
	Instructions string                    `json:"instructions,omitempty"`
}

type PrescribedMedicineInput struct {
	MedicineID   string `json:"medicineId,omitempty"`
	MedicineName string `json:"medicineName,omitempty"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Duration     string `json:"duration,omitempty"`
}

// StatusInput is the body of PATCH /api/appointments/:id/status.
type StatusInput struct {
	Status string `json:"status" binding:"required"`
}

func (in AppointmentInput) toDomain() (*domain.Appointment, error) {
	date, err := httpx.ParseTime("appointmentDate", in.AppointmentDate)
	if err != nil {
		return nil, err
	}

	a := &domain.Appointment{
		UserID:          strings.TrimSpace(in.UserID),
		DoctorName:      strings.TrimSpace(in.DoctorName),
		Specialty:       strings.TrimSpace(in.Specialty),
		AppointmentDate: date,
		TimeSlot:        strings.TrimSpace(in.TimeSlot),
		Type:            in.Type,
		Symptoms:        in.Symptoms,
		Notes:           in.Notes,
		Status:          in.Status,
	}

	if in.DoctorID != "" {
		id, err := objectID("doctorId", in.DoctorID)
		if err != nil {
			return nil, err
		}
		a.DoctorID = &id
	}
	if in.Fees != nil {
		a.Fees = domain.Fees{Consultation: in.Fees.Consultation, Total: in.Fees.Total}
	}
	if in.Prescription != nil {
		a.Prescription.Instructions = in.Prescription.Instructions
		for _, pm := range in.Prescription.Medicines {
			out := domain.PrescribedMedicine{
				MedicineName: pm.MedicineName,
				Dosage:       pm.Dosage,
				Frequency:    pm.Frequency,
				Duration:     pm.Duration,
			}
			if pm.MedicineID != "" {
				id, err := objectID("medicineId", pm.MedicineID)
				if err != nil {
					return nil, err
				}
				out.MedicineID = &id
			}
			a.Prescription.Medicines = append(a.Prescription.Medicines, out)
		}
	}
	return a, nil
}

func objectID(field, hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(hex))
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest(field + " is not a valid id")
	}
	return id, nil
}
