package job

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/application"
	"github.com/honeycarbs/jobzone/pkg/logging"
	"github.com/honeycarbs/jobzone/pkg/richtext"
)

// Listing is one recruiter-owned job with the number of applications it received
type Listing struct {
	Job          domain.Job
	Applications int
}

// Manager handles the jobs of the logged-in recruiter
type Manager struct {
	jobs    Publisher
	apps    ApplicationLister
	session SessionReader
	log     *logging.Logger
	clock   func() time.Time

	mu       sync.Mutex
	listings []Listing
}

// NewManager builds a Manager. Only WithLogger and WithClock apply.
func NewManager(jobs Publisher, apps ApplicationLister, session SessionReader, opts ...Option) (*Manager, error) {
	if jobs == nil {
		return nil, fmt.Errorf("job.Manager: publisher is required")
	}
	if apps == nil {
		return nil, fmt.Errorf("job.Manager: application lister is required")
	}
	if session == nil {
		return nil, fmt.Errorf("job.Manager: session reader is required")
	}

	cfg := &config{
		log:   logging.NewNop(),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Manager{
		jobs:    jobs,
		apps:    apps,
		session: session,
		log:     cfg.log.Named("manager"),
		clock:   cfg.clock,
	}, nil
}

var errNoSession = domain.NewError(domain.ErrInvalidCredentials, "log in as a recruiter first", nil)

func (m *Manager) recruiter(ctx context.Context) (domain.AuthSession, error) {
	s, ok := m.session.Session(ctx)
	if !ok || !s.Valid() {
		return domain.AuthSession{}, errNoSession
	}
	return s, nil
}

// AddJob validates and publishes a job for the logged-in recruiter. The
// posting date is taken from the clock and the company from the session.
func (m *Manager) AddJob(ctx context.Context, in domain.NewJob) (domain.Job, error) {
	s, err := m.recruiter(ctx)
	if err != nil {
		return domain.Job{}, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.Category = strings.TrimSpace(in.Category)
	in.Level = strings.TrimSpace(in.Level)

	f := domain.Fields{}
	f.Require("title", in.Title, "title is required")
	f.Require("location", in.Location, "location is required")
	f.Require("category", in.Category, "category is required")
	f.Require("level", in.Level, "level is required")
	if in.Salary < 0 {
		f["salary"] = "salary cannot be negative"
	}
	if richtext.IsBlank(in.Description) {
		f["description"] = "description is required"
	}
	if err := f.Err("the job is incomplete"); err != nil {
		return domain.Job{}, err
	}

	in.CompanyID = s.RecruiterID
	in.PostedAt = m.clock()

	created, err := m.jobs.CreateJob(ctx, in)
	if err != nil {
		m.log.Warn("create job failed", "title", in.Title, "err", err)
		return domain.Job{}, err
	}
	m.log.Debug("job created", "job_id", created.ID)

	m.mu.Lock()
	m.listings = append(m.listings, Listing{Job: created})
	m.mu.Unlock()

	return created, nil
}

// ListJobs loads the recruiter's jobs, hidden ones included, with their
// application counts.
func (m *Manager) ListJobs(ctx context.Context) ([]Listing, error) {
	s, err := m.recruiter(ctx)
	if err != nil {
		return nil, err
	}

	jobs, err := m.jobs.ListJobs(ctx, s.RecruiterID)
	if err != nil {
		m.log.Warn("list company jobs failed", "err", err)
		return nil, err
	}
	apps, err := m.apps.CompanyApplications(ctx, s.Email)
	if err != nil {
		m.log.Warn("list company applications failed", "err", err)
		return nil, err
	}

	listings := make([]Listing, 0, len(jobs))
	for _, j := range jobs {
		listings = append(listings, Listing{
			Job:          j,
			Applications: application.CountByJob(apps, j.ID),
		})
	}

	m.mu.Lock()
	m.listings = listings
	m.mu.Unlock()

	return append([]Listing(nil), listings...), nil
}

// ToggleVisibility flips the visibility of one of the recruiter's jobs. The
// local listing changes only after the API confirms, and takes the value the
// API returned.
func (m *Manager) ToggleVisibility(ctx context.Context, id domain.JobID) (domain.Job, error) {
	s, err := m.recruiter(ctx)
	if err != nil {
		return domain.Job{}, err
	}

	current, ok := m.find(id)
	if !ok {
		current, err = m.jobs.GetJob(ctx, id)
		if err != nil {
			return domain.Job{}, err
		}
	}
	if current.Company.ID != s.RecruiterID {
		return domain.Job{}, domain.NewError(domain.ErrNotFound, "job not found among your postings", nil)
	}

	updated, err := m.jobs.SetVisibility(ctx, id, !current.Visible)
	if err != nil {
		m.log.Warn("toggle visibility failed", "job_id", id, "err", err)
		return domain.Job{}, err
	}

	current.Visible = updated.Visible

	m.mu.Lock()
	for i := range m.listings {
		if m.listings[i].Job.ID == id {
			m.listings[i].Job.Visible = updated.Visible
			break
		}
	}
	m.mu.Unlock()

	m.log.Debug("job visibility changed", "job_id", id, "visible", updated.Visible)
	return current, nil
}

func (m *Manager) find(id domain.JobID) (domain.Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.listings {
		if l.Job.ID == id {
			return l.Job, true
		}
	}
	return domain.Job{}, false
}
