package ruwler

import "github.com/ruwler/ruwler-go/httpclient"

// MaxItemsPerPage is the largest page size the API serves.
const MaxItemsPerPage = 30

// Pagination filter keys.
const (
	FilterPage         = "page"
	FilterItemsPerPage = "itemsPerPage"
)

// PageFilters returns list filters for one page. page is raised to 1 and
// perPage is clamped to [1, MaxItemsPerPage]; perPage 0 means the maximum.
func PageFilters(page, perPage int) httpclient.Filters {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > MaxItemsPerPage {
		perPage = MaxItemsPerPage
	}
	return httpclient.Filters{
		FilterPage:         page,
		FilterItemsPerPage: perPage,
	}
}
