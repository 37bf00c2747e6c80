package application

import (
	"context"
	"io"
	"sync"

	"github.com/honeycarbs/jobzone/internal/domain"
)

type fakeAPI struct {
	mu sync.Mutex

	apps       []domain.Application
	company    []domain.Application
	resume     string
	applyErr   error
	updateErr  error
	nextID     domain.ApplicationID
	block      chan struct{} // when set, Apply and UpdateApplicationStatus wait on it
	entered    chan struct{}
	applyCalls int
	updates    []domain.ApplicationStatus
	uploads    int
}

func (f *fakeAPI) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeAPI) UserApplications(ctx context.Context, email string) ([]domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Application(nil), f.apps...), nil
}

func (f *fakeAPI) UserResume(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resume, nil
}

func (f *fakeAPI) UploadResume(ctx context.Context, email, fileName string, file io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	f.resume = "https://cdn.example/" + fileName
	return f.resume, nil
}

func (f *fakeAPI) Apply(ctx context.Context, jobID domain.JobID, c domain.Candidate, resumeURL string) (domain.Application, error) {
	f.wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.applyCalls++
	if f.applyErr != nil {
		return domain.Application{}, f.applyErr
	}
	f.nextID++
	return domain.Application{
		ID:             f.nextID,
		JobID:          jobID,
		CandidateEmail: c.Email,
		ResumeURL:      resumeURL,
		Status:         domain.StatusPending,
	}, nil
}

func (f *fakeAPI) CompanyApplications(ctx context.Context, email string) ([]domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Application(nil), f.company...), nil
}

func (f *fakeAPI) UpdateApplicationStatus(ctx context.Context, id domain.ApplicationID, status domain.ApplicationStatus) error {
	f.wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, status)
	return f.updateErr
}

func (f *fakeAPI) calls() (apply, updates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.applyCalls, len(f.updates)
}

type staticSession struct {
	s  domain.AuthSession
	ok bool
}

func (s staticSession) Session(context.Context) (domain.AuthSession, bool) {
	return s.s, s.ok
}

var recruiterSession = staticSession{
	s:  domain.AuthSession{RecruiterID: 7, CompanyName: "Acme", Email: "hr@acme.io"},
	ok: true,
}

// switchSession lets a test log a different recruiter in or out mid-run
type switchSession struct {
	mu sync.Mutex
	s  domain.AuthSession
	ok bool
}

func (s *switchSession) Session(context.Context) (domain.AuthSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.s, s.ok
}

func (s *switchSession) set(session domain.AuthSession, ok bool) {
	s.mu.Lock()
	s.s, s.ok = session, ok
	s.mu.Unlock()
}
