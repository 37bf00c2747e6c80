package job

import "github.com/honeycarbs/jobzone/internal/domain"

// DefaultPageSize is the number of jobs shown per listing page
const DefaultPageSize = 6

// Page is one slice of a result set
type Page struct {
	Items     []domain.Job
	PageCount int
	Page      int // always within [1, max(PageCount, 1)]
}

// Paginate slices results into pages of size and returns the requested page,
// clamped to the valid range. A non-positive size selects DefaultPageSize.
func Paginate(results []domain.Job, size, page int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	count := pageCount(len(results), size)
	page = clamp(page, count)

	start := (page - 1) * size
	if start >= len(results) {
		return Page{Items: []domain.Job{}, PageCount: count, Page: page}
	}
	end := min(start+size, len(results))

	return Page{
		Items:     results[start:end:end],
		PageCount: count,
		Page:      page,
	}
}

func pageCount(n, size int) int {
	return (n + size - 1) / size
}

func clamp(page, count int) int {
	if page < 1 {
		return 1
	}
	if last := max(count, 1); page > last {
		return last
	}
	return page
}

// Pager tracks the current page of a result set. Its page never leaves the
// valid range.
type Pager struct {
	size  int
	total int
	page  int
}

// NewPager creates a pager on page 1 of an empty result set
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size, page: 1}
}

// Reset moves to page 1 of a result set with total items
func (p *Pager) Reset(total int) {
	p.total = max(total, 0)
	p.page = 1
}

// Next advances one page; at the last page it does nothing
func (p *Pager) Next() int {
	return p.Jump(p.page + 1)
}

// Prev goes back one page; at page 1 it does nothing
func (p *Pager) Prev() int {
	return p.Jump(p.page - 1)
}

// Jump moves to page n, clamped to the valid range
func (p *Pager) Jump(n int) int {
	p.page = clamp(n, p.PageCount())
	return p.page
}

func (p *Pager) Page() int {
	return p.page
}

func (p *Pager) PageCount() int {
	return pageCount(p.total, p.size)
}

func (p *Pager) Size() int {
	return p.size
}
