package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is one profile per identity-provider subject.
// firebaseUid and email are each unique across the collection.
type User struct {
	ID             primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	FirebaseUID    string             `json:"firebaseUid" bson:"firebaseUid"`
	Email          string             `json:"email" bson:"email"`
	DisplayName    string             `json:"displayName" bson:"displayName"`
	PhoneNumber    string             `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	DateOfBirth    *time.Time         `json:"dateOfBirth,omitempty" bson:"dateOfBirth,omitempty"`
	Gender         string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Height         string             `json:"height,omitempty" bson:"height,omitempty"`
	Weight         string             `json:"weight,omitempty" bson:"weight,omitempty"`
	ProfilePicture string             `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	Address        *Address           `json:"address,omitempty" bson:"address,omitempty"`
	MedicalInfo    *MedicalInfo       `json:"medicalInfo,omitempty" bson:"medicalInfo,omitempty"`
	HealthStats    HealthStats        `json:"healthStats" bson:"healthStats"`
	Preferences    Preferences        `json:"preferences" bson:"preferences"`
	MembershipType string             `json:"membershipType" bson:"membershipType"`
	IsActive       bool               `json:"isActive" bson:"isActive"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Address struct {
	Street  string `json:"street,omitempty" bson:"street,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty" bson:"zipCode,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
}

type MedicalInfo struct {
	BloodGroup         string            `json:"bloodGroup,omitempty" bson:"bloodGroup,omitempty"`
	Allergies          []string          `json:"allergies" bson:"allergies"`
	ChronicConditions  []string          `json:"chronicConditions" bson:"chronicConditions"`
	CurrentMedications []string          `json:"currentMedications" bson:"currentMedications"`
	EmergencyContact   *EmergencyContact `json:"emergencyContact,omitempty" bson:"emergencyContact,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name,omitempty" bson:"name,omitempty"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty" bson:"relationship,omitempty"`
}

type HealthStats struct {
	BloodPressure string    `json:"bloodPressure,omitempty" bson:"bloodPressure,omitempty"`
	HeartRate     string    `json:"heartRate,omitempty" bson:"heartRate,omitempty"`
	BloodSugar    string    `json:"bloodSugar,omitempty" bson:"bloodSugar,omitempty"`
	BMI           string    `json:"bmi,omitempty" bson:"bmi,omitempty"`
	LastUpdated   time.Time `json:"lastUpdated" bson:"lastUpdated"`
}

type Preferences struct {
	Notifications bool   `json:"notifications" bson:"notifications"`
	Language      string `json:"language" bson:"language"`
	Theme         string `json:"theme" bson:"theme"`
}

// DefaultPreferences are applied when a profile is first created.
func DefaultPreferences() Preferences {
	return Preferences{Notifications: true, Language: "English", Theme: "Light"}
}

// Membership types
const (
	MembershipBasic   = "Basic"
	MembershipPremium = "Premium"
	MembershipGold    = "Gold"
)

var (
	Genders         = []string{"male", "female", "other"}
	BloodGroups     = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
	MembershipTypes = []string{MembershipBasic, MembershipPremium, MembershipGold}
)

// ProfileUpdate is a full-profile write. Nil fields are left as stored;
// FirebaseUID, Email and DisplayName are always written.
type ProfileUpdate struct {
	FirebaseUID    string
	Email          string
	DisplayName    string
	PhoneNumber    *string
	DateOfBirth    *time.Time
	Gender         *string
	Height         *string
	Weight         *string
	ProfilePicture *string
	Address        *Address
	MedicalInfo    *MedicalInfo
	MembershipType *string
}

// PreferencesUpdate touches only the preference sub-fields that are set.
type PreferencesUpdate struct {
	Notifications *bool
	Language      *string
	Theme         *string
}

func (p PreferencesUpdate) IsEmpty() bool {
	return p.Notifications == nil && p.Language == nil && p.Theme == nil
}
