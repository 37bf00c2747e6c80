package job

import (
	"context"
	"sync"
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"
)

type fakeSource struct {
	mu sync.Mutex

	jobs       []domain.Job
	listErr    error
	listCalls  int
	created    []domain.NewJob
	visibility []bool
	setErr     error
	apps       []domain.Application
}

func (f *fakeSource) ListJobs(ctx context.Context, companyID int64) ([]domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Job
	for _, j := range f.jobs {
		if companyID == 0 || j.Company.ID == companyID {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeSource) GetJob(ctx context.Context, id domain.JobID) (domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return domain.Job{}, domain.NewError(domain.ErrNotFound, "", nil)
}

func (f *fakeSource) CreateJob(ctx context.Context, in domain.NewJob) (domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	j := domain.Job{
		ID:          domain.JobID(100 + len(f.created)),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Category:    in.Category,
		Level:       in.Level,
		Salary:      in.Salary,
		PostedAt:    in.PostedAt,
		Company:     domain.CompanyRef{ID: in.CompanyID},
		Visible:     true,
	}
	f.jobs = append(f.jobs, j)
	return j, nil
}

func (f *fakeSource) SetVisibility(ctx context.Context, id domain.JobID, visible bool) (domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.visibility = append(f.visibility, visible)
	if f.setErr != nil {
		return domain.Job{}, f.setErr
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			f.jobs[i].Visible = visible
			return f.jobs[i], nil
		}
	}
	return domain.Job{}, domain.NewError(domain.ErrNotFound, "", nil)
}

func (f *fakeSource) CompanyApplications(ctx context.Context, email string) ([]domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apps, nil
}

type fakeSnapshots struct {
	jobs    []domain.Job
	takenAt time.Time
	saves   int
}

func (f *fakeSnapshots) SaveSnapshot(ctx context.Context, jobs []domain.Job, takenAt time.Time) error {
	f.jobs = append([]domain.Job(nil), jobs...)
	f.takenAt = takenAt
	f.saves++
	return nil
}

func (f *fakeSnapshots) LoadSnapshot(ctx context.Context) ([]domain.Job, time.Time, error) {
	return f.jobs, f.takenAt, nil
}

type staticSession struct {
	s  domain.AuthSession
	ok bool
}

func (s staticSession) Session(context.Context) (domain.AuthSession, bool) {
	return s.s, s.ok
}
