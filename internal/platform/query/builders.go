package query

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
)

// MedicineParams are the raw query-string values of GET /api/medicines.
type MedicineParams struct {
	Page                 string
	Limit                string
	Category             string
	Search               string
	SortBy               string
	SortOrder            string
	PrescriptionRequired string
}

var medicineSortFields = map[string]string{
	"name":           "name",
	"genericName":    "genericName",
	"category":       "category",
	"manufacturer":   "manufacturer",
	"price":          "price",
	"discount":       "discount",
	"stock":          "stock",
	"rating":         "rating.average",
	"rating.average": "rating.average",
	"createdAt":      "createdAt",
	"updatedAt":      "updatedAt",
}

// Medicines builds the catalog listing query. Inactive entries never match.
func Medicines(p MedicineParams, maxLimit int64) Query {
	filter := bson.M{"isActive": true}

	if hasCategory(p.Category) {
		filter["category"] = strings.TrimSpace(p.Category)
	}
	if s := strings.TrimSpace(p.Search); s != "" {
		filter["$or"] = ContainsFold(s, "name", "genericName", "category")
	}
	if v, ok := ParseBool(p.PrescriptionRequired); ok {
		filter["prescriptionRequired"] = v
	}

	field, ok := medicineSortFields[strings.TrimSpace(p.SortBy)]
	if !ok {
		field = "name"
	}

	return Query{
		Filter: filter,
		Sort:   withTiebreak(field, SortOrder(p.SortOrder)),
		Page:   ParsePage(p.Page, p.Limit, maxLimit),
	}
}

// AppointmentParams are the raw query-string values of GET /api/appointments.
type AppointmentParams struct {
	FirebaseUID string
	Status      string
	Page        string
	Limit       string
}

// Appointments builds a user's appointment listing, newest first.
func Appointments(p AppointmentParams, maxLimit int64) (Query, error) {
	uid := strings.TrimSpace(p.FirebaseUID)
	if uid == "" {
		return Query{}, apperr.BadRequest("Firebase UID is required")
	}

	filter := bson.M{"userId": uid}
	if s := strings.TrimSpace(p.Status); s != "" {
		filter["status"] = s
	}

	return Query{
		Filter: filter,
		Sort:   withTiebreak("appointmentDate", -1),
		Page:   ParsePage(p.Page, p.Limit, maxLimit),
	}, nil
}

// CommunityParams are the raw query-string values of GET /api/community/posts.
type CommunityParams struct {
	Page      string
	Limit     string
	Category  string
	Search    string
	SortBy    string
	SortOrder string
}

var communitySortFields = map[string]string{
	"createdAt": "createdAt",
	"updatedAt": "updatedAt",
	"title":     "title",
}

// CommunityPosts builds the approved-post feed. Unlike the catalog it sorts
// newest first unless sortOrder=asc is given.
func CommunityPosts(p CommunityParams, maxLimit int64) Query {
	filter := bson.M{"isApproved": true}

	if hasCategory(p.Category) {
		filter["category"] = strings.TrimSpace(p.Category)
	}
	if s := strings.TrimSpace(p.Search); s != "" {
		filter["$or"] = ContainsFold(s, "title", "content", "tags")
	}

	field, ok := communitySortFields[strings.TrimSpace(p.SortBy)]
	if !ok {
		field = "createdAt"
	}
	order := -1
	if strings.EqualFold(strings.TrimSpace(p.SortOrder), "asc") {
		order = 1
	}

	return Query{
		Filter: filter,
		Sort:   withTiebreak(field, order),
		Page:   ParsePage(p.Page, p.Limit, maxLimit),
	}
}
