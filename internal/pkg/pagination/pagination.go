// Package pagination normalizes page and limit values and derives offsets
// and page counts for list queries.
package pagination

// DefaultLimit is the page size used when none is requested
const DefaultLimit = 10

// MaxLimit caps the page size a client may request
const MaxLimit = 100

// Params is a normalized page request
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Normalize clamps raw page and limit values and derives the offset
func Normalize(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// Pages returns how many pages total items span at the given limit
func Pages(total int64, limit int) int {
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
