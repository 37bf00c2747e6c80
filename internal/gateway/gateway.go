package gateway

import (
	"context"
	"fmt"
	"io"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/application"
	"github.com/honeycarbs/jobzone/internal/domain/auth"
	"github.com/honeycarbs/jobzone/internal/domain/job"
	"github.com/honeycarbs/jobzone/pkg/jobzone"
)

// apiClient describes the subset of the jobzone client used by the gateway.
type apiClient interface {
	ListJobs(ctx context.Context, companyID int64) ([]jobzone.Job, error)
	GetJob(ctx context.Context, id int64) (jobzone.Job, error)
	CreateJob(ctx context.Context, req jobzone.CreateJobRequest) (jobzone.Job, error)
	SetJobVisibility(ctx context.Context, id int64, visible bool) (jobzone.Job, error)
	UserApplications(ctx context.Context, email string) ([]jobzone.Application, error)
	UserResume(ctx context.Context, email string) (string, error)
	UploadResume(ctx context.Context, req jobzone.UploadResumeRequest) (string, error)
	Apply(ctx context.Context, req jobzone.ApplyRequest) (jobzone.Application, error)
	CompanyApplications(ctx context.Context, email string) ([]jobzone.Application, error)
	UpdateApplicationStatus(ctx context.Context, id int64, status string) error
	Login(ctx context.Context, email, password string) (jobzone.LoginResponse, error)
	SignUp(ctx context.Context, req jobzone.SignUpRequest) (string, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
}

// Gateway exposes the job board API to the domain services. Every error it
// returns is classified into the domain error kinds.
type Gateway struct {
	client apiClient
}

var (
	_ job.Publisher         = (*Gateway)(nil)
	_ job.ApplicationLister = (*Gateway)(nil)
	_ application.API       = (*Gateway)(nil)
	_ auth.API              = (*Gateway)(nil)
)

// New builds a Gateway over client
func New(client apiClient) (*Gateway, error) {
	if client == nil {
		return nil, fmt.Errorf("gateway: client is required")
	}
	return &Gateway{client: client}, nil
}

func (g *Gateway) ListJobs(ctx context.Context, companyID int64) ([]domain.Job, error) {
	jobs, err := g.client.ListJobs(ctx, companyID)
	if err != nil {
		return nil, classify(err)
	}

	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJob(j))
	}
	return out, nil
}

func (g *Gateway) GetJob(ctx context.Context, id domain.JobID) (domain.Job, error) {
	j, err := g.client.GetJob(ctx, id)
	if err != nil {
		return domain.Job{}, classify(err)
	}
	return toJob(j), nil
}

func (g *Gateway) CreateJob(ctx context.Context, in domain.NewJob) (domain.Job, error) {
	j, err := g.client.CreateJob(ctx, jobzone.CreateJobRequest{
		Title:       in.Title,
		Location:    in.Location,
		Level:       in.Level,
		CompanyID:   in.CompanyID,
		Description: in.Description,
		Salary:      in.Salary,
		Date:        in.PostedAt,
		Category:    in.Category,
	})
	if err != nil {
		return domain.Job{}, classify(err)
	}
	return toJob(j), nil
}

func (g *Gateway) SetVisibility(ctx context.Context, id domain.JobID, visible bool) (domain.Job, error) {
	j, err := g.client.SetJobVisibility(ctx, id, visible)
	if err != nil {
		return domain.Job{}, classify(err)
	}
	return toJob(j), nil
}

func (g *Gateway) UserApplications(ctx context.Context, email string) ([]domain.Application, error) {
	apps, err := g.client.UserApplications(ctx, email)
	if err != nil {
		return nil, classify(err)
	}
	return toApplications(apps), nil
}

// UserResume treats a 404 as "no resume on file"
func (g *Gateway) UserResume(ctx context.Context, email string) (string, error) {
	url, err := g.client.UserResume(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return "", nil
		}
		return "", classify(err)
	}
	return url, nil
}

func (g *Gateway) UploadResume(ctx context.Context, email, fileName string, file io.Reader) (string, error) {
	url, err := g.client.UploadResume(ctx, jobzone.UploadResumeRequest{
		Email:    email,
		FileName: fileName,
		File:     file,
	})
	if err != nil {
		return "", classify(err)
	}
	return url, nil
}

func (g *Gateway) Apply(ctx context.Context, jobID domain.JobID, c domain.Candidate, resumeURL string) (domain.Application, error) {
	app, err := g.client.Apply(ctx, jobzone.ApplyRequest{
		JobID:     jobID,
		UserEmail: c.Email,
		UserName:  c.Name,
		UserImg:   c.Image,
		Resume:    resumeURL,
	})
	if err != nil {
		return domain.Application{}, classify(err)
	}
	return toApplication(app), nil
}

func (g *Gateway) CompanyApplications(ctx context.Context, email string) ([]domain.Application, error) {
	apps, err := g.client.CompanyApplications(ctx, email)
	if err != nil {
		return nil, classify(err)
	}
	return toApplications(apps), nil
}

func (g *Gateway) UpdateApplicationStatus(ctx context.Context, id domain.ApplicationID, status domain.ApplicationStatus) error {
	return classify(g.client.UpdateApplicationStatus(ctx, id, string(status)))
}

func (g *Gateway) Login(ctx context.Context, email, password string) (domain.Recruiter, error) {
	resp, err := g.client.Login(ctx, email, password)
	if err != nil {
		return domain.Recruiter{}, classify(err)
	}
	r := resp.Recruiter
	return domain.Recruiter{
		ID:          r.ID,
		CompanyName: r.CompanyName,
		Email:       r.Email,
		Image:       r.Image,
	}, nil
}

func (g *Gateway) SignUp(ctx context.Context, r auth.Registration) error {
	_, err := g.client.SignUp(ctx, jobzone.SignUpRequest{
		CompanyName: r.CompanyName,
		Email:       r.Email,
		Password:    r.Password,
		ImageName:   r.ImageName,
		Image:       r.Image,
	})
	return classify(err)
}

func (g *Gateway) ResetPassword(ctx context.Context, email, newPassword string) error {
	return classify(g.client.ResetPassword(ctx, email, newPassword))
}

func toJob(j jobzone.Job) domain.Job {
	out := domain.Job{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Location:    j.Location,
		Category:    j.Category,
		Level:       j.Level,
		Salary:      j.Salary,
		PostedAt:    j.Date,
		Visible:     j.Visible,
	}
	if j.Company != nil {
		out.Company = domain.CompanyRef{
			ID:    j.Company.ID,
			Name:  j.Company.CompanyName,
			Email: j.Company.Email,
			Image: j.Company.Image,
		}
	}
	return out
}

func toApplication(a jobzone.Application) domain.Application {
	out := domain.Application{
		ID:             a.ID,
		CandidateEmail: a.UserEmail,
		CandidateName:  a.UserName,
		CandidateImage: a.UserImg,
		ResumeURL:      a.Resume,
		Status:         domain.ApplicationStatus(a.Status),
		AppliedAt:      a.AppliedAt,
	}
	if out.Status == "" {
		out.Status = domain.StatusPending
	}
	if a.Job != nil {
		out.JobID = a.Job.ID
		out.JobTitle = a.Job.Title
		out.JobLocation = a.Job.Location
	}
	return out
}

func toApplications(apps []jobzone.Application) []domain.Application {
	out := make([]domain.Application, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplication(a))
	}
	return out
}
