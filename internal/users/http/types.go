package http

import (
	"encoding/json"
	"strings"

	"github.com/mediculture/mediculture-backend/internal/platform/httpx"
	"github.com/mediculture/mediculture-backend/internal/users/domain"
	"github.com/mediculture/mediculture-backend/internal/users/service"
)

func init() {
	httpx.RegisterEnum("gender", domain.Genders)
	httpx.RegisterEnum("bloodgroup", domain.BloodGroups)
	httpx.RegisterEnum("membershiptype", domain.MembershipTypes)
}

type Handler struct {
	userService *service.UserService
}

func New(userService *service.UserService) *Handler {
	return &Handler{
		userService: userService,
	}
}

// ProfileInput is the body of POST /api/users/profile. preferences and
// healthStats are written through their own routes and are rejected here.
type ProfileInput struct {
	FirebaseUID    string            `json:"firebaseUid,omitempty"`
	Email          string            `json:"email,omitempty" binding:"omitempty,email"`
	DisplayName    string            `json:"displayName,omitempty"`
	PhoneNumber    *string           `json:"phoneNumber,omitempty"`
	DateOfBirth    *string           `json:"dateOfBirth,omitempty"`
	Gender         *string           `json:"gender,omitempty" binding:"omitempty,gender"`
	Height         *looseString      `json:"height,omitempty"`
	Weight         *looseString      `json:"weight,omitempty"`
	ProfilePicture *string           `json:"profilePicture,omitempty"`
	Address        *domain.Address   `json:"address,omitempty"`
	MedicalInfo    *MedicalInfoInput `json:"medicalInfo,omitempty"`
	MembershipType *string           `json:"membershipType,omitempty" binding:"omitempty,membershiptype"`
}

type MedicalInfoInput struct {
	BloodGroup         string                   `json:"bloodGroup,omitempty" binding:"omitempty,bloodgroup"`
	Allergies          []string                 `json:"allergies,omitempty"`
	ChronicConditions  []string                 `json:"chronicConditions,omitempty"`
	CurrentMedications []string                 `json:"currentMedications,omitempty"`
	EmergencyContact   *domain.EmergencyContact `json:"emergencyContact,omitempty"`
}

// toUpdate maps the body onto a profile write. Identity fields are filled in
// by the handler.
func (in ProfileInput) toUpdate() (domain.ProfileUpdate, error) {
	p := domain.ProfileUpdate{
		PhoneNumber:    in.PhoneNumber,
		Gender:         in.Gender,
		Height:         in.Height.ptr(),
		Weight:         in.Weight.ptr(),
		ProfilePicture: in.ProfilePicture,
		Address:        in.Address,
		MembershipType: in.MembershipType,
	}

	if in.DateOfBirth != nil && strings.TrimSpace(*in.DateOfBirth) != "" {
		dob, err := httpx.ParseTime("dateOfBirth", *in.DateOfBirth)
		if err != nil {
			return domain.ProfileUpdate{}, err
		}
		p.DateOfBirth = &dob
	}

	if in.MedicalInfo != nil {
		p.MedicalInfo = &domain.MedicalInfo{
			BloodGroup:         in.MedicalInfo.BloodGroup,
			Allergies:          in.MedicalInfo.Allergies,
			ChronicConditions:  in.MedicalInfo.ChronicConditions,
			CurrentMedications: in.MedicalInfo.CurrentMedications,
			EmergencyContact:   in.MedicalInfo.EmergencyContact,
		}
	}
	return p, nil
}

// PreferencesInput is the body of PATCH /api/users/preferences.
type PreferencesInput struct {
	Notifications *bool   `json:"notifications,omitempty"`
	Language      *string `json:"language,omitempty"`
	Theme         *string `json:"theme,omitempty"`
}

// HealthStatsInput is the body of PATCH /api/users/health-stats.
type HealthStatsInput struct {
	FirebaseUID string           `json:"firebaseUid,omitempty"`
	HealthStats HealthStatsField `json:"healthStats"`
}

type HealthStatsField struct {
	BloodPressure looseString `json:"bloodPressure,omitempty"`
	HeartRate     looseString `json:"heartRate,omitempty"`
	BloodSugar    looseString `json:"bloodSugar,omitempty"`
	BMI           looseString `json:"bmi,omitempty"`
	// LastUpdated is accepted for client compatibility and ignored.
	LastUpdated json.RawMessage `json:"lastUpdated,omitempty"`
}

func (f HealthStatsField) toDomain() domain.HealthStats {
	return domain.HealthStats{
		BloodPressure: string(f.BloodPressure),
		HeartRate:     string(f.HeartRate),
		BloodSugar:    string(f.BloodSugar),
		BMI:           string(f.BMI),
	}
}

// looseString accepts a JSON string or a JSON number. Vital readings are
// stored as text but clients commonly send them as numbers.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = looseString(n.String())
	return nil
}

func (s *looseString) ptr() *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
