// Package query turns list-endpoint query parameters into MongoDB filters,
// sort documents and skip/limit pairs.
package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10

	// AllCategories is the category sentinel meaning "no category filter".
	AllCategories = "All"
)

// Page is a validated page number and page size.
type Page struct {
	Number int64
	Limit  int64
}

// ParsePage reads page and limit. Missing, non-numeric and non-positive
// values fall back to the defaults. maxLimit caps the page size when > 0.
func ParsePage(page, limit string, maxLimit int64) Page {
	p := Page{
		Number: positiveInt(page, DefaultPage),
		Limit:  positiveInt(limit, DefaultLimit),
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Skip is (page-1)*limit, saturating at math.MaxInt64 so an absurd page
// number reads as an empty page rather than a negative skip.
func (p Page) Skip() int64 {
	if p.Number <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Number-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Number - 1) * p.Limit
}

// Pagination is the metadata block returned next to every listing.
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int64 `json:"itemsPerPage"`
}

func (p Page) Pagination(total int64) Pagination {
	return Pagination{
		CurrentPage:  p.Number,
		TotalPages:   TotalPages(total, p.Limit),
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int64) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// Query is a complete store query for a list endpoint.
type Query struct {
	Filter bson.M
	Sort   bson.D
	Page   Page
}

func (q Query) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(q.Sort).
		SetSkip(q.Page.Skip()).
		SetLimit(q.Page.Limit)
}

// SortOrder maps "desc" to -1 and everything else to 1.
func SortOrder(order string) int {
	if strings.EqualFold(strings.TrimSpace(order), "desc") {
		return -1
	}
	return 1
}

// ContainsFold builds an $or of case-insensitive substring matches of text
// against fields. text is matched literally, not as a pattern.
func ContainsFold(text string, fields ...string) bson.A {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
	out := make(bson.A, 0, len(fields))
	for _, f := range fields {
		out = append(out, bson.M{f: re})
	}
	return out
}

// ParseBool accepts only the literals "true" and "false".
func ParseBool(s string) (value, ok bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

func positiveInt(s string, def int64) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func hasCategory(category string) bool {
	category = strings.TrimSpace(category)
	return category != "" && category != AllCategories
}

// withTiebreak appends _id so pages stay stable across equal sort keys.
func withTiebreak(field string, order int) bson.D {
	if field == "_id" {
		return bson.D{{Key: "_id", Value: order}}
	}
	return bson.D{{Key: field, Value: order}, {Key: "_id", Value: order}}
}
