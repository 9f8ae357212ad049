package grid

import "github.com/contentgrid/rulegrid/internal/types"

// PageSizes is the fixed set of supported page sizes.
var PageSizes = []int{10, 20, 50, 100, 200}

// DefaultPageSize balances render cost against scrolling for large datasets.
const DefaultPageSize = 50

// Page is one window of the filtered record list plus its metadata.
// StartIndex/EndIndex are zero-based half-open offsets into the filtered
// list; a caller displaying "showing X-Y of N" renders StartIndex+1..EndIndex.
type Page struct {
	Window     []types.RuleRecord
	TotalPages int
	StartIndex int
	EndIndex   int
	Total      int
}

// Paginate slices the filtered list into the requested page window.
// TotalPages is at least 1 even for an empty list, so page 1 always exists.
func Paginate(filtered []types.RuleRecord, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Page{
		Window:     filtered[start:end],
		TotalPages: totalPages,
		StartIndex: start,
		EndIndex:   end,
		Total:      len(filtered),
	}
}

// ValidPageSize reports whether n is in the supported set.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if n == s {
			return true
		}
	}
	return false
}

// Pager tracks the current page and page size. Navigation clamps to
// [1, totalPages]; out-of-range jumps are rejected with state unchanged.
type Pager struct {
	page     int
	pageSize int
}

// NewPager starts on page 1 with the default page size.
func NewPager() *Pager {
	return &Pager{page: 1, pageSize: DefaultPageSize}
}

// Current returns the 1-based current page.
func (p *Pager) Current() int { return p.page }

// PageSize returns the active page size.
func (p *Pager) PageSize() int { return p.pageSize }

// First navigates to page 1.
func (p *Pager) First() { p.page = 1 }

// Last navigates to the final page for the given total.
func (p *Pager) Last(totalPages int) {
	if totalPages < 1 {
		totalPages = 1
	}
	p.page = totalPages
}

// Prev navigates one page back, clamped at page 1.
func (p *Pager) Prev() {
	if p.page > 1 {
		p.page--
	}
}

// Next navigates one page forward, clamped at the final page.
func (p *Pager) Next(totalPages int) {
	if p.page < totalPages {
		p.page++
	}
}

// Jump navigates to an absolute page. Requests outside [1, totalPages] are
// rejected and leave the current page unchanged.
func (p *Pager) Jump(page, totalPages int) bool {
	if page < 1 || page > totalPages {
		return false
	}
	p.page = page
	return true
}

// SetPageSize switches to a supported page size and resets to page 1.
func (p *Pager) SetPageSize(n int) error {
	if !ValidPageSize(n) {
		return types.ErrInvalidPageSize
	}
	p.pageSize = n
	p.page = 1
	return nil
}

// Reset returns to page 1. Called whenever the filter set changes.
func (p *Pager) Reset() { p.page = 1 }
