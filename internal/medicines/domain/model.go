package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medicine is a catalog entry. Entries with IsActive=false are hidden from
// every catalog route.
type Medicine struct {
	ID                   primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name                 string             `json:"name" bson:"name"`
	GenericName          string             `json:"genericName,omitempty" bson:"genericName,omitempty"`
	Manufacturer         string             `json:"manufacturer,omitempty" bson:"manufacturer,omitempty"`
	Category             string             `json:"category" bson:"category"`
	Description          string             `json:"description,omitempty" bson:"description,omitempty"`
	Price                float64            `json:"price" bson:"price"`
	OriginalPrice        *float64           `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Discount             float64            `json:"discount" bson:"discount"`
	Dosage               string             `json:"dosage,omitempty" bson:"dosage,omitempty"`
	Packaging            string             `json:"packaging,omitempty" bson:"packaging,omitempty"`
	SideEffects          []string           `json:"sideEffects" bson:"sideEffects"`
	Contraindications    []string           `json:"contraindications" bson:"contraindications"`
	PrescriptionRequired bool               `json:"prescriptionRequired" bson:"prescriptionRequired"`
	Stock                int64              `json:"stock" bson:"stock"`
	Images               []string           `json:"images" bson:"images"`
	Rating               Rating             `json:"rating" bson:"rating"`
	IsActive             bool               `json:"isActive" bson:"isActive"`
	Tags                 []string           `json:"tags" bson:"tags"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Rating struct {
	Average float64 `json:"average" bson:"average"`
	Count   int64   `json:"count" bson:"count"`
}

const (
	MinRating = 0
	MaxRating = 5
)

// Categories accepted by the catalog.
var Categories = []string{
	"Pain Relief",
	"Vitamins",
	"Antibiotics",
	"Skincare",
	"Heart Health",
	"Diabetes",
	"Other",
}

func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// Validate checks the fields a catalog entry cannot be stored without.
func (m *Medicine) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrNameRequired
	}
	if !IsCategory(m.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// Normalize clamps the rating and replaces nil lists with empty ones before
// a write.
func (m *Medicine) Normalize() {
	if m.Rating.Average < MinRating {
		m.Rating.Average = MinRating
	}
	if m.Rating.Average > MaxRating {
		m.Rating.Average = MaxRating
	}
	if m.Rating.Count < 0 {
		m.Rating.Count = 0
	}
	if m.Stock < 0 {
		m.Stock = 0
	}
	for _, l := range []*[]string{&m.SideEffects, &m.Contraindications, &m.Images, &m.Tags} {
		if *l == nil {
			*l = []string{}
		}
	}
}

// Ref is the slice of a medicine embedded into prescriptions on read.
type Ref struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	GenericName string             `json:"genericName,omitempty" bson:"genericName,omitempty"`
}
