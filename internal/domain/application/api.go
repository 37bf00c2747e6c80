package application

import (
	"context"
	"io"

	"github.com/honeycarbs/jobzone/internal/domain"
)

// CandidateAPI is the candidate side of the job board API
type CandidateAPI interface {
	UserApplications(ctx context.Context, email string) ([]domain.Application, error)

	// UserResume returns "" when the candidate has no resume on file
	UserResume(ctx context.Context, email string) (string, error)

	UploadResume(ctx context.Context, email, fileName string, file io.Reader) (string, error)

	// Apply fails with domain.ErrAlreadyApplied when the API already holds an
	// application for the same job and email.
	Apply(ctx context.Context, jobID domain.JobID, candidate domain.Candidate, resumeURL string) (domain.Application, error)
}

// RecruiterAPI is the recruiter side of the job board API
type RecruiterAPI interface {
	CompanyApplications(ctx context.Context, email string) ([]domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id domain.ApplicationID, status domain.ApplicationStatus) error
}

// API combines both sides
type API interface {
	CandidateAPI
	RecruiterAPI
}

// SessionReader exposes the active recruiter session, if any
type SessionReader interface {
	Session(ctx context.Context) (domain.AuthSession, bool)
}

// StatusChanger is the only capability a recruiter view needs to act on an application
type StatusChanger interface {
	SetStatus(ctx context.Context, id domain.ApplicationID, status domain.ApplicationStatus) (domain.Application, error)
}

// CountByJob returns how many of apps target jobID
func CountByJob(apps []domain.Application, jobID domain.JobID) int {
	n := 0
	for _, a := range apps {
		if a.JobID == jobID {
			n++
		}
	}
	return n
}
