package utils

import "math"

const DefaultPerPage = 5

// PerPageOptions are the table sizes the console offers.
var PerPageOptions = []int{5, 10, 15}

type Page struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

func validPerPage(n int) bool {
	for _, o := range PerPageOptions {
		if o == n {
			return true
		}
	}
	return false
}

func normalize(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if !validPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// Calculate normalises page and size and returns the slice bounds. Pages past
// what an int offset can hold are clamped.
func Calculate(page, perPage int) (offset, limit int) {
	page, perPage = normalize(page, perPage)
	if page-1 > math.MaxInt/perPage {
		page = math.MaxInt/perPage + 1
	}
	return (page - 1) * perPage, perPage
}

// Paginate cuts one page out of an already filtered list. A page past the end
// is empty.
func Paginate[T any](items []T, page, perPage int) ([]T, Page) {
	page, limit := normalize(page, perPage)

	info := Page{
		Page:       page,
		PerPage:    limit,
		Total:      len(items),
		TotalPages: (len(items) + limit - 1) / limit,
	}

	offset, _ := Calculate(page, limit)
	if offset >= len(items) {
		return []T{}, info
	}
	end := min(offset+limit, len(items))
	return items[offset:end], info
}
