package query

import (
	"fmt"
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediculture/mediculture-backend/internal/platform/apperr"
)

func TestParsePage(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		maxLimit  int64
		wantPage  int64
		wantLimit int64
	}{
		{"defaults", "", "", 0, 1, 10},
		{"explicit", "3", "25", 0, 3, 25},
		{"non numeric", "abc", "x", 0, 1, 10},
		{"zero and negative", "0", "-5", 0, 1, 10},
		{"uncapped by default", "1", "5000", 0, 1, 5000},
		{"capped", "2", "500", 100, 2, 100},
		{"whitespace", " 4 ", " 7 ", 0, 4, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePage(tt.page, tt.limit, tt.maxLimit)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestPage_SkipIsPageMinusOneTimesLimit(t *testing.T) {
	for page := int64(1); page <= 20; page++ {
		for limit := int64(1); limit <= 50; limit += 7 {
			p := ParsePage(fmt.Sprint(page), fmt.Sprint(limit), 0)
			assert.Equal(t, (page-1)*limit, p.Skip())
		}
	}
}

func TestPage_SkipSaturates(t *testing.T) {
	tests := []struct {
		page, limit string
		want        int64
	}{
		{"9223372036854775807", "10", math.MaxInt64},
		{"9223372036854775807", "9223372036854775807", math.MaxInt64},
		{"2", "9223372036854775807", math.MaxInt64},
		{"922337203685477581", "10", 9223372036854775800},
		{"1", "9223372036854775807", 0},
	}
	for _, tt := range tests {
		p := ParsePage(tt.page, tt.limit, 0)
		assert.Equal(t, tt.want, p.Skip(), "page=%s limit=%s", tt.page, tt.limit)
		assert.GreaterOrEqual(t, p.Skip(), int64(0))
	}

	opts := Query{Page: ParsePage("9223372036854775807", "10", 0)}.FindOptions()
	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(math.MaxInt64), *opts.Skip)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(34), TotalPages(334, 10))
	assert.Equal(t, int64(0), TotalPages(5, 0))
	assert.Equal(t, int64(1), TotalPages(5, math.MaxInt64))
	assert.Equal(t, int64(2), TotalPages(math.MaxInt64, math.MaxInt64-1))

	for total := int64(0); total < 200; total += 13 {
		for limit := int64(1); limit < 30; limit += 4 {
			got := TotalPages(total, limit)
			assert.GreaterOrEqual(t, got*limit, total)
			if total > 0 {
				assert.Less(t, (got-1)*limit, total)
			}
		}
	}
}

func TestPage_Pagination(t *testing.T) {
	p := ParsePage("2", "10", 0)
	assert.Equal(t, Pagination{
		CurrentPage:  2,
		TotalPages:   3,
		TotalItems:   25,
		ItemsPerPage: 10,
	}, p.Pagination(25))
}

func TestQuery_FindOptions(t *testing.T) {
	q := Medicines(MedicineParams{Page: "3", Limit: "5"}, 0)
	opts := q.FindOptions()
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(10), *opts.Skip)
	assert.Equal(t, int64(5), *opts.Limit)
	assert.Equal(t, q.Sort, opts.Sort)
}

func TestMedicines_AlwaysActiveOnly(t *testing.T) {
	params := []MedicineParams{
		{},
		{Category: "Vitamins"},
		{Search: "para"},
		{PrescriptionRequired: "false"},
		{Category: "All", Search: "x", SortBy: "price", SortOrder: "desc"},
	}
	for _, p := range params {
		q := Medicines(p, 0)
		assert.Equal(t, true, q.Filter["isActive"])
	}
}

func TestMedicines_CategoryAllMatchesNoFilter(t *testing.T) {
	all := Medicines(MedicineParams{Category: "All"}, 0)
	none := Medicines(MedicineParams{}, 0)
	assert.Equal(t, none.Filter, all.Filter)
	assert.NotContains(t, all.Filter, "category")

	exact := Medicines(MedicineParams{Category: "Pain Relief"}, 0)
	assert.Equal(t, "Pain Relief", exact.Filter["category"])
}

func TestMedicines_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	q := Medicines(MedicineParams{Search: "para"}, 0)

	or, ok := q.Filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 3)

	var fields []string
	for _, clause := range or {
		for k, v := range clause.(bson.M) {
			fields = append(fields, k)
			re := v.(primitive.Regex)
			assert.Equal(t, "i", re.Options)
		}
	}
	assert.ElementsMatch(t, []string{"name", "genericName", "category"}, fields)

	re := or[0].(bson.M)["name"].(primitive.Regex)
	matcher := regexp.MustCompile("(?" + re.Options + ")" + re.Pattern)
	assert.True(t, matcher.MatchString("Paracetamol"))
	assert.False(t, matcher.MatchString("Ibuprofen"))
}

func TestMedicines_SearchEscapesPatternCharacters(t *testing.T) {
	q := Medicines(MedicineParams{Search: "a.c(1"}, 0)
	re := q.Filter["$or"].(bson.A)[0].(bson.M)["name"].(primitive.Regex)

	matcher := regexp.MustCompile("(?i)" + re.Pattern)
	assert.True(t, matcher.MatchString("xa.c(1)"))
	assert.False(t, matcher.MatchString("abc(1"))
}

func TestMedicines_PrescriptionRequired(t *testing.T) {
	assert.Equal(t, true, Medicines(MedicineParams{PrescriptionRequired: "true"}, 0).Filter["prescriptionRequired"])
	assert.Equal(t, false, Medicines(MedicineParams{PrescriptionRequired: "false"}, 0).Filter["prescriptionRequired"])
	assert.NotContains(t, Medicines(MedicineParams{PrescriptionRequired: "yes"}, 0).Filter, "prescriptionRequired")
	assert.NotContains(t, Medicines(MedicineParams{}, 0).Filter, "prescriptionRequired")
}

func TestMedicines_Sort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}, Medicines(MedicineParams{}, 0).Sort)
	assert.Equal(t, bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: -1}},
		Medicines(MedicineParams{SortBy: "price", SortOrder: "desc"}, 0).Sort)
	assert.Equal(t, bson.D{{Key: "rating.average", Value: 1}, {Key: "_id", Value: 1}},
		Medicines(MedicineParams{SortBy: "rating", SortOrder: "ASC"}, 0).Sort)
	assert.Equal(t, bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}},
		Medicines(MedicineParams{SortBy: "$where"}, 0).Sort)
}

func TestAppointments(t *testing.T) {
	t.Run("requires firebase uid", func(t *testing.T) {
		_, err := Appointments(AppointmentParams{Status: "scheduled"}, 0)
		require.Error(t, err)
		assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	})

	t.Run("filters by user and status newest first", func(t *testing.T) {
		q, err := Appointments(AppointmentParams{FirebaseUID: "user123", Status: "completed", Limit: "5"}, 0)
		require.NoError(t, err)
		assert.Equal(t, bson.M{"userId": "user123", "status": "completed"}, q.Filter)
		assert.Equal(t, "appointmentDate", q.Sort[0].Key)
		assert.Equal(t, -1, q.Sort[0].Value)
		assert.Equal(t, int64(5), q.Page.Limit)
	})

	t.Run("status optional", func(t *testing.T) {
		q, err := Appointments(AppointmentParams{FirebaseUID: "user123"}, 0)
		require.NoError(t, err)
		assert.Equal(t, bson.M{"userId": "user123"}, q.Filter)
		assert.Equal(t, DefaultLimit, q.Page.Limit)
	})
}

func TestCommunityPosts(t *testing.T) {
	q := CommunityPosts(CommunityParams{}, 0)
	assert.Equal(t, bson.M{"isApproved": true}, q.Filter)
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, q.Sort)

	q = CommunityPosts(CommunityParams{Category: "Nutrition", Search: "keto", SortBy: "title", SortOrder: "asc"}, 0)
	assert.Equal(t, "Nutrition", q.Filter["category"])
	assert.Len(t, q.Filter["$or"], 3)
	assert.Equal(t, bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}}, q.Sort)

	q = CommunityPosts(CommunityParams{Category: "All"}, 0)
	assert.NotContains(t, q.Filter, "category")
}
