package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/societyhub/backend/internal/interfaces/http/dto"
)

const dateLayout = "2006-01-02"

// parseDateParam parses an optional YYYY-MM-DD query parameter.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseEndDateParam parses an optional YYYY-MM-DD query parameter and
// shifts it to the end of the day so range filters are inclusive.
func parseEndDateParam(value string) (*time.Time, error) {
	t, err := parseDateParam(value)
	if err != nil || t == nil {
		return nil, err
	}
	end := t.Add(24*time.Hour - time.Second)
	return &end, nil
}

// parseUUIDParam parses an optional UUID query parameter.
func parseUUIDParam(value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// toSharedFilter converts a list request into a repository filter.
func toSharedFilter(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}

// normalizePagination applies default page and page size values.
func normalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}
