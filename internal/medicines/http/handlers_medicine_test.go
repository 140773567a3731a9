package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mediculture/mediculture-backend/internal/db"
	"github.com/mediculture/mediculture-backend/internal/medicines/domain"
	"github.com/mediculture/mediculture-backend/internal/medicines/service"
	"github.com/mediculture/mediculture-backend/internal/platform/query"
)

// catalogStore evaluates the filters the query builder produces against an
// in-memory catalog.
type catalogStore struct {
	medicines []domain.Medicine
}

func field(m domain.Medicine, name string) interface{} {
	switch name {
	case "name":
		return m.Name
	case "genericName":
		return m.GenericName
	case "category":
		return m.Category
	case "isActive":
		return m.IsActive
	case "prescriptionRequired":
		return m.PrescriptionRequired
	case "price":
		return m.Price
	}
	return nil
}

func matches(m domain.Medicine, filter bson.M) bool {
	for k, want := range filter {
		if k == "$or" {
			hit := false
			for _, clause := range want.(bson.A) {
				if matches(m, clause.(bson.M)) {
					hit = true
				}
			}
			if !hit {
				return false
			}
			continue
		}
		if re, ok := want.(primitive.Regex); ok {
			s, _ := field(m, k).(string)
			if !strings.Contains(strings.ToLower(s), strings.ToLower(unquote(re.Pattern))) {
				return false
			}
			continue
		}
		if field(m, k) != want {
			return false
		}
	}
	return true
}

// unquote reverses regexp.QuoteMeta for the plain-text patterns used here.
func unquote(p string) string {
	return strings.ReplaceAll(p, `\`, "")
}

func (s *catalogStore) List(_ context.Context, q query.Query) ([]domain.Medicine, int64, error) {
	var hits []domain.Medicine
	for _, m := range s.medicines {
		if matches(m, q.Filter) {
			hits = append(hits, m)
		}
	}

	key, order := q.Sort[0].Key, q.Sort[0].Value.(int)
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := field(hits[i], key), field(hits[j], key)
		var less bool
		switch av := a.(type) {
		case string:
			less = av < b.(string)
		case float64:
			less = av < b.(float64)
		}
		if order < 0 {
			return !less && a != b
		}
		return less
	})

	total := int64(len(hits))
	start := q.Page.Skip()
	if start > total {
		start = total
	}
	end := start + q.Page.Limit
	if end > total {
		end = total
	}
	return hits[start:end], total, nil
}

func (s *catalogStore) GetActiveByID(_ context.Context, id string) (*domain.Medicine, error) {
	oid, ok := db.ObjectID(id)
	if !ok {
		return nil, domain.ErrMedicineNotFound
	}
	for _, m := range s.medicines {
		if m.ID == oid && m.IsActive {
			return &m, nil
		}
	}
	return nil, domain.ErrMedicineNotFound
}

func (s *catalogStore) Categories(context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, m := range s.medicines {
		if m.IsActive && !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *catalogStore) Refs(context.Context, []primitive.ObjectID) (map[primitive.ObjectID]domain.Ref, error) {
	return nil, nil
}

var (
	paracetamolID = primitive.NewObjectID()
	retiredID     = primitive.NewObjectID()
)

func sampleCatalog() *catalogStore {
	return &catalogStore{medicines: []domain.Medicine{
		{ID: paracetamolID, Name: "Paracetamol", GenericName: "Acetaminophen", Category: "Pain Relief", Price: 25.99, IsActive: true},
		{ID: primitive.NewObjectID(), Name: "Ibuprofen", GenericName: "Ibuprofen", Category: "Pain Relief", Price: 30, IsActive: true},
		{ID: primitive.NewObjectID(), Name: "Vitamin D3", GenericName: "Cholecalciferol", Category: "Vitamins", Price: 45.5, IsActive: true},
		{ID: primitive.NewObjectID(), Name: "Amoxicillin", GenericName: "Amoxicillin", Category: "Antibiotics", Price: 85, PrescriptionRequired: true, IsActive: true},
		{ID: retiredID, Name: "Paracetamol Old Stock", Category: "Pain Relief", Price: 10, IsActive: false},
	}}
}

func setupRouter(store service.MedicineStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(service.NewMedicineService(store, nil, 0)).Register(r.Group("/api/medicines"))
	return r
}

type listBody struct {
	Medicines  []domain.Medicine `json:"medicines"`
	Pagination query.Pagination  `json:"pagination"`
}

func list(t *testing.T, r *gin.Engine, rawQuery string) listBody {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/medicines?"+rawQuery, nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var body listBody
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func names(ms []domain.Medicine) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Name
	}
	return out
}

func TestListMedicines(t *testing.T) {
	r := setupRouter(sampleCatalog())

	t.Run("defaults exclude inactive", func(t *testing.T) {
		body := list(t, r, "")
		assert.Equal(t, []string{"Amoxicillin", "Ibuprofen", "Paracetamol", "Vitamin D3"}, names(body.Medicines))
		assert.Equal(t, query.Pagination{CurrentPage: 1, TotalPages: 1, TotalItems: 4, ItemsPerPage: 10}, body.Pagination)
		for _, m := range body.Medicines {
			assert.True(t, m.IsActive)
		}
	})

	t.Run("search is a case-insensitive substring", func(t *testing.T) {
		body := list(t, r, "search=para")
		assert.Equal(t, []string{"Paracetamol"}, names(body.Medicines))
	})

	t.Run("search matches generic name", func(t *testing.T) {
		body := list(t, r, "search=cholecalc")
		assert.Equal(t, []string{"Vitamin D3"}, names(body.Medicines))
	})

	t.Run("category All is no filter", func(t *testing.T) {
		all := list(t, r, "category=All")
		none := list(t, r, "")
		assert.Equal(t, names(none.Medicines), names(all.Medicines))
	})

	t.Run("category exact match", func(t *testing.T) {
		body := list(t, r, "category=Pain+Relief")
		assert.Equal(t, []string{"Ibuprofen", "Paracetamol"}, names(body.Medicines))
	})

	t.Run("prescription filter", func(t *testing.T) {
		body := list(t, r, "prescriptionRequired=true")
		assert.Equal(t, []string{"Amoxicillin"}, names(body.Medicines))

		body = list(t, r, "prescriptionRequired=yes")
		assert.Len(t, body.Medicines, 4)
	})

	t.Run("sort descending", func(t *testing.T) {
		body := list(t, r, "sortBy=price&sortOrder=desc")
		assert.Equal(t, []string{"Amoxicillin", "Vitamin D3", "Ibuprofen", "Paracetamol"}, names(body.Medicines))
	})

	t.Run("paging", func(t *testing.T) {
		body := list(t, r, "page=2&limit=3")
		assert.Equal(t, []string{"Vitamin D3"}, names(body.Medicines))
		assert.Equal(t, query.Pagination{CurrentPage: 2, TotalPages: 2, TotalItems: 4, ItemsPerPage: 3}, body.Pagination)
		assert.LessOrEqual(t, int64(len(body.Medicines)), body.Pagination.ItemsPerPage)
	})

	t.Run("empty page is an empty list", func(t *testing.T) {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/medicines?page=9", nil))
		assert.Contains(t, rr.Body.String(), `"medicines":[]`)
	})
}

func TestGetMedicine(t *testing.T) {
	r := setupRouter(sampleCatalog())

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"active", paracetamolID.Hex(), http.StatusOK},
		{"inactive is not found", retiredID.Hex(), http.StatusNotFound},
		{"unknown id", primitive.NewObjectID().Hex(), http.StatusNotFound},
		{"malformed id", "not-an-id", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/medicines/"+tt.id, nil))
			assert.Equal(t, tt.status, rr.Code)
			if tt.status == http.StatusNotFound {
				assert.JSONEq(t, `{"error":"Medicine not found"}`, rr.Body.String())
			}
		})
	}
}

func TestListCategories(t *testing.T) {
	r := setupRouter(sampleCatalog())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/medicines/categories/list", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `["Antibiotics","Pain Relief","Vitamins"]`, rr.Body.String())
}
