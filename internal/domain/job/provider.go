package job

import (
	"context"

	"github.com/honeycarbs/jobzone/internal/domain"
)

// Source supplies jobs from the job board API
type Source interface {
	// ListJobs returns jobs in ingestion order, hidden ones included. A non-zero
	// companyID restricts the result to that company.
	ListJobs(ctx context.Context, companyID int64) ([]domain.Job, error)

	GetJob(ctx context.Context, id domain.JobID) (domain.Job, error)
}

// Publisher is the recruiter side of the job board API
type Publisher interface {
	Source

	CreateJob(ctx context.Context, job domain.NewJob) (domain.Job, error)

	// SetVisibility returns the job as stored after the change
	SetVisibility(ctx context.Context, id domain.JobID, visible bool) (domain.Job, error)
}

// ApplicationLister loads the applications received by a recruiter
type ApplicationLister interface {
	CompanyApplications(ctx context.Context, email string) ([]domain.Application, error)
}

// SessionReader exposes the active recruiter session, if any
type SessionReader interface {
	Session(ctx context.Context) (domain.AuthSession, bool)
}
