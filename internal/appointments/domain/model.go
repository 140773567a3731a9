package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	medicines "github.com/mediculture/mediculture-backend/internal/medicines/domain"
)

// Appointment is one booking between a user and a named doctor. No
// double-booking check is made on (doctorId, appointmentDate, timeSlot).
type Appointment struct {
	ID              primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	UserID          string              `json:"userId" bson:"userId"`
	DoctorID        *primitive.ObjectID `json:"doctorId,omitempty" bson:"doctorId,omitempty"`
	DoctorName      string              `json:"doctorName" bson:"doctorName"`
	Specialty       string              `json:"specialty" bson:"specialty"`
	AppointmentDate time.Time           `json:"appointmentDate" bson:"appointmentDate"`
	TimeSlot        string              `json:"timeSlot" bson:"timeSlot"`
	Type            string              `json:"type" bson:"type"`
	Symptoms        []string            `json:"symptoms" bson:"symptoms"`
	Notes           string              `json:"notes,omitempty" bson:"notes,omitempty"`
	Status          string              `json:"status" bson:"status"`
	Fees            Fees                `json:"fees" bson:"fees"`
	Prescription    Prescription        `json:"prescription" bson:"prescription"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type Fees struct {
	Consultation float64 `json:"consultation" bson:"consultation"`
	Total        float64 `json:"total" bson:"total"`
}

type Prescription struct {
	Medicines    []PrescribedMedicine `json:"medicines" bson:"medicines"`
	Instructions string               `json:"instructions,omitempty" bson:"instructions,omitempty"`
}

// PrescribedMedicine references a catalog entry. Medicine is filled on read
// from the catalog and is never stored.
type PrescribedMedicine struct {
	MedicineID   *primitive.ObjectID `json:"medicineId,omitempty" bson:"medicineId,omitempty"`
	MedicineName string              `json:"medicineName,omitempty" bson:"medicineName,omitempty"`
	Dosage       string              `json:"dosage,omitempty" bson:"dosage,omitempty"`
	Frequency    string              `json:"frequency,omitempty" bson:"frequency,omitempty"`
	Duration     string              `json:"duration,omitempty" bson:"duration,omitempty"`
	Medicine     *medicines.Ref      `json:"medicine,omitempty" bson:"-"`
}

// Appointment types
const (
	TypeConsultation = "consultation"
	TypeCheckup      = "checkup"
	TypeFollowUp     = "follow-up"
	TypeEmergency    = "emergency"
)

// Appointment statuses. Any status may move to any other.
const (
	StatusScheduled   = "scheduled"
	StatusConfirmed   = "confirmed"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusRescheduled = "rescheduled"
)

var (
	Types    = []string{TypeConsultation, TypeCheckup, TypeFollowUp, TypeEmergency}
	Statuses = []string{StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled}
)

func IsStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// MedicineIDs lists the distinct catalog ids referenced by the prescriptions
// of appts.
func MedicineIDs(appts ...*Appointment) []primitive.ObjectID {
	seen := map[primitive.ObjectID]bool{}
	var ids []primitive.ObjectID
	for _, a := range appts {
		for _, pm := range a.Prescription.Medicines {
			if pm.MedicineID == nil || seen[*pm.MedicineID] {
				continue
			}
			seen[*pm.MedicineID] = true
			ids = append(ids, *pm.MedicineID)
		}
	}
	return ids
}
