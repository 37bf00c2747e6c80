package job

import (
	"strings"

	"github.com/honeycarbs/jobzone/internal/domain"
)

// Filter returns the jobs matching every active constraint, newest first.
// jobs must be in ingestion order and already restricted to visible postings.
// The input slice is never modified.
func Filter(jobs []domain.Job, sel domain.FilterSelection, search domain.SearchCriteria) []domain.Job {
	title := strings.ToLower(search.Title)
	location := strings.ToLower(search.Location)

	out := make([]domain.Job, 0, len(jobs))
	for i := len(jobs) - 1; i >= 0; i-- {
		j := jobs[i]
		if sel.Categories.Len() > 0 && !sel.Categories.Has(j.Category) {
			continue
		}
		if sel.Locations.Len() > 0 && !sel.Locations.Has(j.Location) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(j.Title), title) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(j.Location), location) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// Visible keeps only the jobs candidates may discover, preserving order
func Visible(jobs []domain.Job) []domain.Job {
	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if j.Visible {
			out = append(out, j)
		}
	}
	return out
}

// Related returns up to limit other jobs of the same company as target, in
// ingestion order.
func Related(jobs []domain.Job, target domain.Job, limit int) []domain.Job {
	var out []domain.Job
	for _, j := range jobs {
		if limit > 0 && len(out) == limit {
			break
		}
		if j.ID == target.ID || j.Company.ID != target.Company.ID {
			continue
		}
		out = append(out, j)
	}
	return out
}

// Facets lists the distinct categories and locations present in jobs
func Facets(jobs []domain.Job) (categories, locations []string) {
	cats := domain.NewSet()
	locs := domain.NewSet()
	for _, j := range jobs {
		if j.Category != "" {
			cats[j.Category] = struct{}{}
		}
		if j.Location != "" {
			locs[j.Location] = struct{}{}
		}
	}
	return cats.Values(), locs.Values()
}
