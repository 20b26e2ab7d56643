package queries

import (
	"fmt"
	"strings"

	"fleet/internal/pkg/errs"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Page is a validated 1-based page request. Zero values select the defaults.
type Page struct {
	number int
	limit  int
}

func NewPage(number, limit int) (Page, error) {
	if number == 0 {
		number = DefaultPage
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if number < 1 {
		return Page{}, errs.NewValueIsOutOfRangeError("page", number, 1, "unbounded")
	}
	if limit < 1 {
		return Page{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return Page{number: number, limit: limit}, nil
}

func (p Page) Number() int {
	return p.number
}

func (p Page) Limit() int {
	return p.limit
}

func (p Page) offset() int {
	return (p.number - 1) * p.limit
}

// PageResult is one page of a listing.
type PageResult[T any] struct {
	Results      []T   `json:"results"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	TotalPages   int   `json:"totalPages"`
	TotalResults int64 `json:"totalResults"`
}

func newPageResult[T any](results []T, page Page, total int64) PageResult[T] {
	if results == nil {
		results = make([]T, 0)
	}
	totalPages := int((total + int64(page.limit) - 1) / int64(page.limit))
	return PageResult[T]{
		Results:      results,
		Page:         page.number,
		Limit:        page.limit,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}

type sortField struct {
	column string
	desc   bool
}

// parseSortBy reads "field:asc,field:desc". Fields map to columns through
// allowed; the direction defaults to asc.
func parseSortBy(sortBy string, allowed map[string]string) ([]sortField, error) {
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		return nil, nil
	}

	var fields []sortField
	for _, part := range strings.Split(sortBy, ",") {
		name, dir, _ := strings.Cut(strings.TrimSpace(part), ":")
		column, ok := allowed[strings.TrimSpace(name)]
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause("sortBy",
				fmt.Errorf("cannot sort by %q", name))
		}
		f := sortField{column: column}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			f.desc = true
		default:
			return nil, errs.NewValueIsInvalidErrorWithCause("sortBy",
				fmt.Errorf("unknown direction %q for %q", dir, name))
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// applyOrder adds the requested ordering and always ends on created_at, id
// so that pages are stable.
func applyOrder(db *gorm.DB, fields []sortField) *gorm.DB {
	for _, f := range fields {
		if f.desc {
			db = db.Order(f.column + " DESC")
		} else {
			db = db.Order(f.column + " ASC")
		}
	}
	return db.Order("created_at ASC").Order("id ASC")
}

func applyPage(db *gorm.DB, page Page) *gorm.DB {
	return db.Offset(page.offset()).Limit(page.limit)
}
