// Package pagination implements in-process search, sort, and paging over a
// loaded collection.
//
// List endpoints load the full (already aggregated) collection from the
// repository and hand it to Paginate together with the parsed query
// parameters, a set of searchable string accessors, and a map of client-facing
// sort keys to comparators. The query parameter names (pageIndex, perPage,
// search, sortBy) are an external contract and must stay stable.
package pagination

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Request holds the parsed list query parameters
type Request struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	Desc    bool
}

// Meta describes the page that was produced
type Meta struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PerPage    int  `json:"perPage"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// ParseRequest reads the list query contract from URL query values.
// Missing or malformed numeric values fall back to defaults; they never
// produce an error for the caller.
func ParseRequest(q url.Values) Request {
	req := Request{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
		Search:  strings.TrimSpace(q.Get("search")),
	}

	if v := q.Get("pageIndex"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			req.Page = n
		}
	}
	if v := q.Get("perPage"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			req.PerPage = n
		}
	}
	if req.PerPage > MaxPerPage {
		req.PerPage = MaxPerPage
	}

	sortBy := strings.TrimSpace(q.Get("sortBy"))
	if strings.HasPrefix(sortBy, "-") {
		req.Desc = true
		sortBy = sortBy[1:]
	}
	req.SortBy = sortBy

	return req
}

// Paginate filters items by the request's search term (case-insensitive
// substring match, OR across the search accessors), sorts them when the sort
// key is recognized, and slices out the requested page.
//
// Unrecognized sort keys are ignored and the input order is preserved. A page
// past the end yields an empty slice. The sort is stable so rows with equal
// keys keep their store order.
func Paginate[T any](items []T, req Request, search []func(T) string, sortKeys map[string]func(a, b T) int) ([]T, Meta) {
	filtered := items
	if req.Search != "" {
		term := strings.ToLower(req.Search)
		filtered = make([]T, 0, len(items))
		for _, item := range items {
			for _, field := range search {
				if strings.Contains(strings.ToLower(field(item)), term) {
					filtered = append(filtered, item)
					break
				}
			}
		}
	}

	if cmp, ok := sortKeys[req.SortBy]; ok {
		ordered := make([]T, len(filtered))
		copy(ordered, filtered)
		sort.SliceStable(ordered, func(i, j int) bool {
			if req.Desc {
				return cmp(ordered[i], ordered[j]) > 0
			}
			return cmp(ordered[i], ordered[j]) < 0
		})
		filtered = ordered
	}

	page := req.Page
	if page < 1 {
		page = DefaultPage
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	total := len(filtered)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	meta := Meta{
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}

	return filtered[start:end], meta
}
