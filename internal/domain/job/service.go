package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/pkg/logging"
)

// RelatedLimit caps the related jobs shown next to a job detail
const RelatedLimit = 4

// SearchField names one input of the search box
type SearchField string

const (
	FieldTitle    SearchField = "title"
	FieldLocation SearchField = "location"
)

// Option configures Board
type Option func(*config)

type config struct {
	source   Source
	repo     SnapshotRepository
	log      *logging.Logger
	pageSize int
	clock    func() time.Time
}

// WithSource sets the job source
func WithSource(source Source) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithRepository sets the snapshot repository used as offline fallback
func WithRepository(repo SnapshotRepository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithPageSize overrides DefaultPageSize
func WithPageSize(size int) Option {
	return func(c *config) {
		c.pageSize = size
	}
}

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// View is what a candidate sees of the listing
type View struct {
	Items       []domain.Job
	Page        int
	PageCount   int
	Total       int
	Selection   domain.FilterSelection
	Search      domain.SearchCriteria
	Categories  []string
	Locations   []string
	Stale       bool // served from the snapshot after a failed refresh
	RefreshedAt time.Time
}

// Board is the candidate job listing. It holds the visible jobs, the active
// filters and the current page; every filter change re-runs Filter and
// returns to page 1. Safe for concurrent use.
type Board struct {
	source Source
	repo   SnapshotRepository
	log    *logging.Logger
	clock  func() time.Time

	mu          sync.Mutex
	jobs        []domain.Job
	sel         domain.FilterSelection
	search      domain.SearchCriteria
	results     []domain.Job
	pager       *Pager
	stale       bool
	refreshedAt time.Time
}

// NewBoard builds Board from options
func NewBoard(opts ...Option) (*Board, error) {
	cfg := &config{
		log:      logging.NewNop(),
		pageSize: DefaultPageSize,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.source == nil {
		return nil, fmt.Errorf("job.Board: source is required")
	}

	b := &Board{
		source: cfg.source,
		repo:   cfg.repo,
		log:    cfg.log.Named("board"),
		clock:  cfg.clock,
		sel: domain.FilterSelection{
			Categories: domain.NewSet(),
			Locations:  domain.NewSet(),
		},
		pager: NewPager(cfg.pageSize),
	}
	b.results = []domain.Job{}
	return b, nil
}

// Refresh reloads the visible jobs. When the source fails and a snapshot is
// available, the snapshot is served instead and the view is marked stale.
func (b *Board) Refresh(ctx context.Context) (View, error) {
	jobs, err := b.source.ListJobs(ctx, 0)
	if err != nil {
		b.log.Warn("list jobs failed", "err", err)
		snap, takenAt, ok := b.loadSnapshot(ctx)
		if !ok {
			return b.View(), err
		}

		b.mu.Lock()
		defer b.mu.Unlock()
		b.replace(snap, takenAt, true)
		return b.view(), nil
	}

	visible := Visible(jobs)
	now := b.clock()

	if b.repo != nil {
		if err := b.repo.SaveSnapshot(ctx, visible, now); err != nil {
			b.log.Warn("save job snapshot failed", "err", err)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.replace(visible, now, false)
	b.log.Debug("jobs refreshed", "visible", len(visible), "total", len(jobs))
	return b.view(), nil
}

func (b *Board) loadSnapshot(ctx context.Context) ([]domain.Job, time.Time, bool) {
	if b.repo == nil {
		return nil, time.Time{}, false
	}
	jobs, takenAt, err := b.repo.LoadSnapshot(ctx)
	if err != nil {
		b.log.Warn("load job snapshot failed", "err", err)
		return nil, time.Time{}, false
	}
	if takenAt.IsZero() {
		return nil, time.Time{}, false
	}
	return Visible(jobs), takenAt, true
}

// ToggleCategory adds or removes category from the selection
func (b *Board) ToggleCategory(category string) View {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel.Categories = b.sel.Categories.Toggle(category)
	b.refilter()
	return b.view()
}

// ToggleLocation adds or removes location from the selection
func (b *Board) ToggleLocation(location string) View {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel.Locations = b.sel.Locations.Toggle(location)
	b.refilter()
	return b.view()
}

// SetSearch replaces the search box input
func (b *Board) SetSearch(search domain.SearchCriteria) View {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.search = search
	b.refilter()
	return b.view()
}

// ClearSearchField empties one search input
func (b *Board) ClearSearchField(field SearchField) (View, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch field {
	case FieldTitle:
		b.search.Title = ""
	case FieldLocation:
		b.search.Location = ""
	default:
		return b.view(), domain.NewValidationError(fmt.Sprintf("unknown search field %q", field), nil)
	}
	b.refilter()
	return b.view(), nil
}

// Next moves to the following page
func (b *Board) Next() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.Next()
	return b.view()
}

// Prev moves to the previous page
func (b *Board) Prev() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.Prev()
	return b.view()
}

// Jump moves to page n, clamped to the valid range
func (b *Board) Jump(n int) View {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pager.Jump(n)
	return b.view()
}

// View returns the current page without changing anything
func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view()
}

// GetJob loads one job together with up to RelatedLimit visible jobs of the
// same company.
func (b *Board) GetJob(ctx context.Context, id domain.JobID) (domain.Job, []domain.Job, error) {
	j, err := b.source.GetJob(ctx, id)
	if err != nil {
		b.log.Warn("get job failed", "job_id", id, "err", err)
		return domain.Job{}, nil, err
	}

	b.mu.Lock()
	related := Related(b.jobs, j, RelatedLimit)
	b.mu.Unlock()

	return j, related, nil
}

func (b *Board) replace(jobs []domain.Job, at time.Time, stale bool) {
	b.jobs = jobs
	b.refreshedAt = at
	b.stale = stale
	b.refilter()
}

// refilter must be called with mu held
func (b *Board) refilter() {
	b.results = Filter(b.jobs, b.sel, b.search)
	b.pager.Reset(len(b.results))
}

func (b *Board) view() View {
	p := Paginate(b.results, b.pager.Size(), b.pager.Page())
	cats, locs := Facets(b.jobs)
	return View{
		Items:       p.Items,
		Page:        p.Page,
		PageCount:   p.PageCount,
		Total:       len(b.results),
		Selection:   b.sel.Clone(),
		Search:      b.search,
		Categories:  cats,
		Locations:   locs,
		Stale:       b.stale,
		RefreshedAt: b.refreshedAt,
	}
}
