// Package pagination implements skip/take paging with metadata for every
// list-returning query. Count and slice run on the gorm handle the caller
// passes in, so executing them through an open transaction yields a
// consistent snapshot even under concurrent writes.
package pagination

import (
	"fmt"

	"gorm.io/gorm"

	"match-service/pkg/apperr"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Result carries one page of items plus enough metadata for a caller to
// compute total pages without re-querying.
type Result[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
}

// Normalize validates the page number and clamps the page size into
// [1, MaxPageSize]. Page numbers below 1 are a validation error; an
// unset size falls back to the default.
func Normalize(pageNumber, pageSize int) (int, int, error) {
	if pageNumber < 1 {
		return 0, 0, apperr.New(apperr.Validation,
			fmt.Sprintf("page number must be 1 or greater, got %d", pageNumber))
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageNumber, pageSize, nil
}

// Paginate runs the count and the page slice of query and scans the rows
// into T. The query must already carry its filters, joins, selects and
// ordering. Pages past the end come back with empty items and the real
// total, not an error.
func Paginate[T any](query *gorm.DB, pageNumber, pageSize int) (*Result[T], error) {
	pageNumber, pageSize, err := Normalize(pageNumber, pageSize)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]T, 0, pageSize)
	err = query.
		Offset((pageNumber - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Result[T]{
		Items:       items,
		CurrentPage: pageNumber,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  totalPages(total, pageSize),
	}, nil
}

func totalPages(total int64, size int) int {
	return int((total + int64(size) - 1) / int64(size))
}
