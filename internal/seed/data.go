package seed

import (
	"time"

	appointments "github.com/mediculture/mediculture-backend/internal/appointments/domain"
	community "github.com/mediculture/mediculture-backend/internal/community/domain"
	medicines "github.com/mediculture/mediculture-backend/internal/medicines/domain"
	users "github.com/mediculture/mediculture-backend/internal/users/domain"
)

const SampleUserUID = "user123"

func ptr[T any](v T) *T { return &v }

func sampleProfile() users.ProfileUpdate {
	dob := time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC)
	return users.ProfileUpdate{
		FirebaseUID: SampleUserUID,
		Email:       "john.doe@example.com",
		DisplayName: "John Doe",
		PhoneNumber: ptr("+1234567890"),
		DateOfBirth: &dob,
		Gender:      ptr("male"),
		Height:      ptr(`5'8"`),
		Weight:      ptr("70kg"),
		MedicalInfo: &users.MedicalInfo{
			BloodGroup:         "O+",
			Allergies:          []string{"Peanuts", "Shellfish"},
			ChronicConditions:  []string{},
			CurrentMedications: []string{"Vitamin D"},
		},
		MembershipType: ptr(users.MembershipPremium),
	}
}

func sampleHealthStats(now time.Time) users.HealthStats {
	return users.HealthStats{
		BloodPressure: "120/80",
		HeartRate:     "72",
		BloodSugar:    "95",
		BMI:           "22.4",
		LastUpdated:   now,
	}
}

func sampleMedicines() []medicines.Medicine {
	return []medicines.Medicine{
		{
			Name:          "Paracetamol",
			GenericName:   "Acetaminophen",
			Manufacturer:  "HealthCorp",
			Category:      "Pain Relief",
			Description:   "Effective pain relief and fever reducer",
			Price:         25,
			OriginalPrice: ptr(30.0),
			Discount:      17,
			Dosage:        "500mg",
			Packaging:     "10 tablets",
			Stock:         100,
			Rating:        medicines.Rating{Average: 4.5, Count: 150},
			IsActive:      true,
		},
		{
			Name:          "Vitamin D3",
			GenericName:   "Cholecalciferol",
			Manufacturer:  "VitaLife",
			Category:      "Vitamins",
			Description:   "Essential vitamin D supplement",
			Price:         150,
			OriginalPrice: ptr(180.0),
			Discount:      17,
			Dosage:        "1000 IU",
			Packaging:     "30 capsules",
			Stock:         50,
			Rating:        medicines.Rating{Average: 4.8, Count: 89},
			IsActive:      true,
		},
		{
			Name:                 "Amoxicillin",
			GenericName:          "Amoxicillin",
			Manufacturer:         "MediPharm",
			Category:             "Antibiotics",
			Description:          "Broad-spectrum antibiotic",
			Price:                120,
			Dosage:               "250mg",
			Packaging:            "21 capsules",
			PrescriptionRequired: true,
			Stock:                30,
			Rating:               medicines.Rating{Average: 4.2, Count: 45},
			IsActive:             true,
		},
	}
}

// sampleAppointments links the completed checkup to the seeded paracetamol
// so prescription expansion has something to resolve.
func sampleAppointments(paracetamol medicines.Medicine) []appointments.Appointment {
	return []appointments.Appointment{
		{
			UserID:          SampleUserUID,
			DoctorName:      "Dr. Sarah Smith",
			Specialty:       "General Medicine",
			AppointmentDate: time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
			TimeSlot:        "10:00 AM",
			Type:            appointments.TypeConsultation,
			Symptoms:        []string{"Headache", "Fever"},
			Status:          appointments.StatusScheduled,
			Fees:            appointments.Fees{Consultation: 300, Total: 300},
		},
		{
			UserID:          SampleUserUID,
			DoctorName:      "Dr. Mike Johnson",
			Specialty:       "Cardiology",
			AppointmentDate: time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
			TimeSlot:        "2:00 PM",
			Type:            appointments.TypeCheckup,
			Status:          appointments.StatusCompleted,
			Fees:            appointments.Fees{Consultation: 500, Total: 500},
			Prescription: appointments.Prescription{
				Medicines: []appointments.PrescribedMedicine{{
					MedicineID:   &paracetamol.ID,
					MedicineName: paracetamol.Name,
					Dosage:       "500mg",
					Frequency:    "Twice daily",
					Duration:     "5 days",
				}},
				Instructions: "Take after meals",
			},
		},
	}
}

func samplePosts() []community.Post {
	return []community.Post{
		{
			UserID:          SampleUserUID,
			UserDisplayName: "John Doe",
			Category:        "Fitness",
			Title:           "Starting a walking routine",
			Content:         "Thirty minutes a day after dinner has made a real difference.",
			Tags:            []string{"walking", "routine"},
		},
	}
}
