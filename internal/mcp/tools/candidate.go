package tools

import (
	"bytes"
	"context"
	"encoding/base64"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/application"
	"github.com/honeycarbs/jobzone/internal/domain/job"
)

// CandidateParams identifies the signed-in candidate
type CandidateParams struct {
	Email string `json:"email" jsonschema:"Candidate email from the identity provider"`
	Name  string `json:"name,omitempty" jsonschema:"Candidate display name"`
	Image string `json:"image,omitempty" jsonschema:"Candidate avatar URL"`
}

func candidate(email, name, image string) *domain.Candidate {
	return &domain.Candidate{Email: email, Name: name, Image: image}
}

// ResumeUploadParams defines the arguments for the resume_upload tool
type ResumeUploadParams struct {
	Email    string `json:"email" jsonschema:"Candidate email from the identity provider"`
	Name     string `json:"name,omitempty"`
	Image    string `json:"image,omitempty"`
	FileName string `json:"file_name" jsonschema:"Resume file name, e.g. resume.pdf"`
	Content  string `json:"content_base64" jsonschema:"Base64 encoded file content"`
}

// JobApplyParams defines the arguments for the job_apply tool
type JobApplyParams struct {
	Email     string `json:"email" jsonschema:"Candidate email from the identity provider"`
	Name      string `json:"name,omitempty"`
	Image     string `json:"image,omitempty"`
	JobID     int64  `json:"job_id" jsonschema:"Job to apply for"`
	ResumeURL string `json:"resume_url,omitempty" jsonschema:"Resume to attach; defaults to the resume on file"`
}

type candidateState struct {
	Applications []applicationView `json:"applications"`
	ResumeURL    string            `json:"resume_url,omitempty"`
}

// WithCandidateSync registers the candidate_sync tool
func WithCandidateSync(lifecycle *application.Lifecycle) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "candidate_sync",
			Description: "Load a candidate's applications and resume so already-applied jobs are recognized",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params CandidateParams) (*sdkmcp.CallToolResult, any, error) {
			state, err := lifecycle.SyncCandidate(ctx, candidate(params.Email, params.Name, params.Image))
			if err != nil {
				return errorResult(reg.log, "candidate_sync", err)
			}
			return jsonResult(candidateState{
				Applications: toApplicationViews(state.Applications),
				ResumeURL:    state.ResumeURL,
			})
		})
	}
}

// WithResumeUpload registers the resume_upload tool
func WithResumeUpload(lifecycle *application.Lifecycle) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "resume_upload",
			Description: "Store a candidate resume; it becomes the default for job_apply",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ResumeUploadParams) (*sdkmcp.CallToolResult, any, error) {
			raw, err := base64.StdEncoding.DecodeString(params.Content)
			if err != nil || len(raw) == 0 {
				verr := domain.NewValidationError("resume content must be non-empty base64", map[string]string{"content_base64": "invalid"})
				return errorResult(reg.log, "resume_upload", verr)
			}

			url, err := lifecycle.UploadResume(ctx, candidate(params.Email, params.Name, params.Image), params.FileName, bytes.NewReader(raw))
			if err != nil {
				return errorResult(reg.log, "resume_upload", err)
			}
			return jsonResult(map[string]string{"resume_url": url})
		})
	}
}

// WithJobApply registers the job_apply tool
func WithJobApply(board *job.Board, lifecycle *application.Lifecycle) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_apply",
			Description: "Apply for a job once; repeated calls report that the candidate already applied",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobApplyParams) (*sdkmcp.CallToolResult, any, error) {
			c := candidate(params.Email, params.Name, params.Image)
			if !c.Authenticated() {
				return errorResult(reg.log, "job_apply", domain.NewValidationError("sign in to apply", map[string]string{"email": "required"}))
			}

			// a known application needs no job lookup
			if _, ok := lifecycle.Status(params.JobID, c.Email); ok {
				return errorResult(reg.log, "job_apply", domain.NewError(domain.ErrAlreadyApplied, "you have already applied for this job", nil))
			}

			j, _, err := board.GetJob(ctx, params.JobID)
			if err != nil {
				return errorResult(reg.log, "job_apply", err)
			}

			app, err := lifecycle.Apply(ctx, j, c, params.ResumeURL)
			if err != nil {
				return errorResult(reg.log, "job_apply", err)
			}
			return jsonResult(toApplicationView(app))
		})
	}
}
