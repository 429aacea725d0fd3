package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

type Filter struct {
	Page   int
	Limit  int
	Search string
}

func (f Filter) Offset() uint64 {
	if f.Page <= 1 {
		return 0
	}
	return uint64((f.Page - 1) * f.Limit)
}

// ParseFilterFromQuery reads the common list parameters. Out-of-range
// values fall back to defaults instead of erroring.
func ParseFilterFromQuery(values url.Values) Filter {
	f := Filter{
		Page:   1,
		Limit:  DefaultLimit,
		Search: values.Get("search"),
	}

	if limitStr := values.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			if limit > MaxLimit {
				limit = MaxLimit
			}
			f.Limit = limit
		}
	}

	if pageStr := values.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			f.Page = page
		}
	}

	return f
}
