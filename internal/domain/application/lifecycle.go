package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/pkg/logging"
)

// Option configures Lifecycle
type Option func(*Lifecycle)

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(l *Lifecycle) {
		if log != nil {
			l.log = log
		}
	}
}

// WithFinalDecisions makes Accepted and Rejected final for recruiters too
func WithFinalDecisions(final bool) Option {
	return func(l *Lifecycle) {
		l.final = final
	}
}

type key struct {
	job   domain.JobID
	email string
}

func keyOf(jobID domain.JobID, email string) key {
	return key{job: jobID, email: strings.ToLower(email)}
}

// CandidateState is what the candidate side knows after a sync
type CandidateState struct {
	Applications []domain.Application
	ResumeURL    string
}

// Lifecycle tracks applications for both the candidate and the recruiter
// view. Local state changes only after the API confirms a command.
type Lifecycle struct {
	api     API
	session SessionReader
	log     *logging.Logger
	final   bool

	mu       sync.Mutex
	applied  map[key]domain.Application
	resumes  map[string]string
	company  []domain.Application
	owner    int64 // recruiter the company list was loaded for
	applying map[key]struct{}
	updating map[domain.ApplicationID]struct{}
}

var _ StatusChanger = (*Lifecycle)(nil)

// NewLifecycle builds a Lifecycle on top of api. session gates the recruiter operations.
func NewLifecycle(api API, session SessionReader, opts ...Option) (*Lifecycle, error) {
	if api == nil {
		return nil, fmt.Errorf("application.Lifecycle: api is required")
	}
	if session == nil {
		return nil, fmt.Errorf("application.Lifecycle: session reader is required")
	}

	l := &Lifecycle{
		api:      api,
		session:  session,
		log:      logging.NewNop(),
		applied:  make(map[key]domain.Application),
		resumes:  make(map[string]string),
		applying: make(map[key]struct{}),
		updating: make(map[domain.ApplicationID]struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.Named("applications")
	return l, nil
}

var errSignIn = domain.NewValidationError("sign in to continue", map[string]string{"candidate": "not authenticated"})

// SyncCandidate loads the candidate's applications and resume so the local
// already-applied check reflects what the API holds.
func (l *Lifecycle) SyncCandidate(ctx context.Context, c *domain.Candidate) (CandidateState, error) {
	if !c.Authenticated() {
		return CandidateState{}, errSignIn
	}

	apps, err := l.api.UserApplications(ctx, c.Email)
	if err != nil {
		l.log.Warn("load candidate applications failed", "err", err)
		return CandidateState{}, err
	}
	resume, err := l.api.UserResume(ctx, c.Email)
	if err != nil {
		l.log.Warn("load candidate resume failed", "err", err)
		return CandidateState{}, err
	}

	email := strings.ToLower(c.Email)

	l.mu.Lock()
	defer l.mu.Unlock()
	for k := range l.applied {
		if k.email == email {
			delete(l.applied, k)
		}
	}
	for _, a := range apps {
		l.applied[keyOf(a.JobID, c.Email)] = a
	}
	l.resumes[email] = resume

	l.log.Debug("candidate synced", "applications", len(apps), "has_resume", resume != "")
	return CandidateState{Applications: append([]domain.Application(nil), apps...), ResumeURL: resume}, nil
}

// Resume returns the resume URL on file for the candidate, "" when none
func (l *Lifecycle) Resume(ctx context.Context, c *domain.Candidate) (string, error) {
	if !c.Authenticated() {
		return "", errSignIn
	}

	resume, err := l.api.UserResume(ctx, c.Email)
	if err != nil {
		l.log.Warn("load resume failed", "err", err)
		return "", err
	}

	l.mu.Lock()
	l.resumes[strings.ToLower(c.Email)] = resume
	l.mu.Unlock()
	return resume, nil
}

// UploadResume stores a resume file; its URL becomes the default for Apply
func (l *Lifecycle) UploadResume(ctx context.Context, c *domain.Candidate, fileName string, file io.Reader) (string, error) {
	if !c.Authenticated() {
		return "", errSignIn
	}
	if file == nil {
		return "", domain.NewValidationError("choose a resume file to upload", map[string]string{"resume": "file is required"})
	}

	url, err := l.api.UploadResume(ctx, c.Email, fileName, file)
	if err != nil {
		l.log.Warn("upload resume failed", "err", err)
		return "", err
	}

	l.mu.Lock()
	l.resumes[strings.ToLower(c.Email)] = url
	l.mu.Unlock()

	l.log.Debug("resume uploaded")
	return url, nil
}

// Status returns the candidate's application status for jobID; false means
// not applied.
func (l *Lifecycle) Status(jobID domain.JobID, email string) (domain.ApplicationStatus, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.applied[keyOf(jobID, email)]
	return a.Status, ok
}

// Apply submits one application for (job, candidate). An empty resumeURL
// falls back to the resume on file. A pair already applied, locally or per
// the API, fails with domain.ErrAlreadyApplied; only the first call reaches
// the API.
func (l *Lifecycle) Apply(ctx context.Context, job domain.Job, c *domain.Candidate, resumeURL string) (domain.Application, error) {
	if !c.Authenticated() {
		return domain.Application{}, errSignIn
	}
	if job.ID == 0 {
		return domain.Application{}, domain.NewValidationError("choose a job to apply for", map[string]string{"job": "missing id"})
	}

	k := keyOf(job.ID, c.Email)

	l.mu.Lock()
	if resumeURL == "" {
		resumeURL = l.resumes[k.email]
	}
	if resumeURL == "" {
		l.mu.Unlock()
		return domain.Application{}, domain.NewValidationError("upload your resume before applying", map[string]string{"resume": "resume is required"})
	}
	if existing, ok := l.applied[k]; ok {
		l.mu.Unlock()
		return existing, domain.NewError(domain.ErrAlreadyApplied, "you have already applied for this job", nil)
	}
	if _, ok := l.applying[k]; ok {
		l.mu.Unlock()
		return domain.Application{}, domain.NewError(domain.ErrRequestInFlight, "your application is being submitted", nil)
	}
	l.applying[k] = struct{}{}
	l.mu.Unlock()

	app, err := l.api.Apply(ctx, job.ID, *c, resumeURL)

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.applying, k)

	if err != nil {
		if errors.Is(err, domain.ErrAlreadyApplied) {
			placeholder := domain.Application{
				JobID:          job.ID,
				JobTitle:       job.Title,
				JobLocation:    job.Location,
				CandidateEmail: c.Email,
				ResumeURL:      resumeURL,
				Status:         domain.StatusPending,
			}
			l.applied[k] = placeholder
			l.log.Debug("application already on file", "job_id", job.ID)
			return placeholder, err
		}
		l.log.Warn("apply failed", "job_id", job.ID, "err", err)
		return domain.Application{}, err
	}

	if app.JobID == 0 {
		app.JobID = job.ID
	}
	if app.JobTitle == "" {
		app.JobTitle = job.Title
	}
	if app.Status == "" {
		app.Status = domain.StatusPending
	}
	l.applied[k] = app

	l.log.Debug("application submitted", "job_id", job.ID, "application_id", app.ID)
	return app, nil
}

func (l *Lifecycle) recruiter(ctx context.Context) (domain.AuthSession, error) {
	s, ok := l.session.Session(ctx)
	if !ok || !s.Valid() {
		return domain.AuthSession{}, domain.NewError(domain.ErrInvalidCredentials, "log in as a recruiter first", nil)
	}
	return s, nil
}

// LoadCompanyApplications loads every application to the recruiter's jobs.
// The returned order is kept by later status changes.
func (l *Lifecycle) LoadCompanyApplications(ctx context.Context) ([]domain.Application, error) {
	s, err := l.recruiter(ctx)
	if err != nil {
		return nil, err
	}

	apps, err := l.api.CompanyApplications(ctx, s.Email)
	if err != nil {
		l.log.Warn("load company applications failed", "err", err)
		return nil, err
	}

	l.mu.Lock()
	l.company = apps
	l.owner = s.RecruiterID
	l.mu.Unlock()

	return append([]domain.Application(nil), apps...), nil
}

// CompanyApplications returns the applications last loaded for the current
// recruiter. A list loaded under another session is dropped, not returned.
func (l *Lifecycle) CompanyApplications(ctx context.Context) ([]domain.Application, error) {
	s, err := l.recruiter(ctx)
	if err != nil {
		l.dropCompany()
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.ownedBy(s.RecruiterID) {
		l.company, l.owner = nil, 0
		return nil, nil
	}
	return append([]domain.Application(nil), l.company...), nil
}

func (l *Lifecycle) dropCompany() {
	l.mu.Lock()
	l.company, l.owner = nil, 0
	l.mu.Unlock()
}

// ownedBy reports whether the loaded company list belongs to recruiterID.
// l.mu must be held.
func (l *Lifecycle) ownedBy(recruiterID int64) bool {
	return l.company != nil && l.owner == recruiterID
}

// SetStatus changes the status of one loaded application. The record is
// updated in place after the API confirms; on failure nothing changes.
func (l *Lifecycle) SetStatus(ctx context.Context, id domain.ApplicationID, status domain.ApplicationStatus) (domain.Application, error) {
	s, err := l.recruiter(ctx)
	if err != nil {
		l.dropCompany()
		return domain.Application{}, err
	}
	if !status.Valid() {
		return domain.Application{}, domain.NewValidationError(
			fmt.Sprintf("unknown status %q", status),
			map[string]string{"status": "must be Pending, Accepted or Rejected"},
		)
	}

	l.mu.Lock()
	if !l.ownedBy(s.RecruiterID) {
		l.company, l.owner = nil, 0
		l.mu.Unlock()
		return domain.Application{}, domain.NewError(domain.ErrNotFound, "application not found, reload the list", nil)
	}
	idx := l.indexOf(id)
	if idx < 0 {
		l.mu.Unlock()
		return domain.Application{}, domain.NewError(domain.ErrNotFound, "application not found, reload the list", nil)
	}
	current := l.company[idx]
	if current.Status == status {
		l.mu.Unlock()
		return current, nil
	}
	if l.final && current.Status.Terminal() {
		l.mu.Unlock()
		return current, domain.NewValidationError(
			fmt.Sprintf("application is already %s", strings.ToLower(string(current.Status))),
			map[string]string{"status": "decision is final"},
		)
	}
	if _, ok := l.updating[id]; ok {
		l.mu.Unlock()
		return current, domain.NewError(domain.ErrRequestInFlight, "a status change for this application is in progress", nil)
	}
	l.updating[id] = struct{}{}
	l.mu.Unlock()

	err = l.api.UpdateApplicationStatus(ctx, id, status)

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.updating, id)

	if err != nil {
		l.log.Warn("update application status failed", "application_id", id, "err", err)
		return current, err
	}

	// the list may have been reloaded while the request was out
	if idx = l.indexOf(id); idx >= 0 && l.owner == s.RecruiterID {
		l.company[idx].Status = status
		current = l.company[idx]
	} else {
		current.Status = status
	}

	for k, a := range l.applied {
		if a.ID == id {
			a.Status = status
			l.applied[k] = a
		}
	}

	l.log.Debug("application status updated", "application_id", id, "status", status)
	return current, nil
}

func (l *Lifecycle) indexOf(id domain.ApplicationID) int {
	for i, a := range l.company {
		if a.ID == id {
			return i
		}
	}
	return -1
}
