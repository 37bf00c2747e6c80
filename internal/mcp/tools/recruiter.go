package tools

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/application"
	"github.com/honeycarbs/jobzone/internal/domain/auth"
	"github.com/honeycarbs/jobzone/internal/domain/job"
	"github.com/honeycarbs/jobzone/internal/export"
)

// RecruiterAuthParams defines the arguments for the recruiter_auth tool
type RecruiterAuthParams struct {
	Action      string `json:"action" jsonschema:"toggle_signup, toggle_forgot, login, signup_text, signup_image, reset, logout or state"`
	CompanyName string `json:"company_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"password,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
	ImageName   string `json:"image_name,omitempty" jsonschema:"Company logo file name"`
	Image       string `json:"image_base64,omitempty" jsonschema:"Base64 encoded company logo"`
}

type authView struct {
	State   string              `json:"state"`
	Session *domain.AuthSession `json:"session,omitempty"`
}

// WithRecruiterAuth registers the recruiter_auth tool
func WithRecruiterAuth(flow *auth.Flow) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "recruiter_auth",
			Description: "Drive recruiter login, two-step sign up, password reset and logout",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params RecruiterAuthParams) (*sdkmcp.CallToolResult, any, error) {
			var err error
			switch params.Action {
			case "toggle_signup":
				_, err = flow.ToggleSignUp()
			case "toggle_forgot":
				_, err = flow.ToggleForgot()
			case "login":
				_, err = flow.SubmitLogin(ctx, params.Email, params.Password)
			case "signup_text":
				err = flow.SubmitSignUpText(params.CompanyName, params.Email, params.Password)
			case "signup_image":
				var raw []byte
				if params.Image != "" {
					raw, err = base64.StdEncoding.DecodeString(params.Image)
					if err != nil {
						err = domain.NewValidationError("logo must be base64 encoded", map[string]string{"image_base64": "invalid"})
						break
					}
				}
				if len(raw) == 0 {
					err = flow.SubmitSignUpImage(ctx, params.ImageName, nil)
				} else {
					err = flow.SubmitSignUpImage(ctx, params.ImageName, bytes.NewReader(raw))
				}
			case "reset":
				err = flow.SubmitReset(ctx, params.Email, params.NewPassword)
			case "logout":
				err = flow.Logout(ctx)
			case "state":
			default:
				err = domain.NewValidationError(fmt.Sprintf("unknown auth action %q", params.Action), nil)
			}
			if err != nil {
				return errorResult(reg.log, "recruiter_auth", err)
			}

			out := authView{State: flow.State().String()}
			if s, ok := flow.Session(ctx); ok {
				out.Session = &s
			}
			return jsonResult(out)
		})
	}
}

type listingView struct {
	jobView
	Applications int `json:"applications"`
}

// WithRecruiterJobs registers the recruiter_jobs tool
func WithRecruiterJobs(manager *job.Manager) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "recruiter_jobs",
			Description: "List the logged-in recruiter's jobs, hidden ones included, with application counts",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
			listings, err := manager.ListJobs(ctx)
			if err != nil {
				return errorResult(reg.log, "recruiter_jobs", err)
			}
			out := make([]listingView, 0, len(listings))
			for _, l := range listings {
				out = append(out, listingView{jobView: toJobView(l.Job), Applications: l.Applications})
			}
			return jsonResult(out)
		})
	}
}

// JobAddParams defines the arguments for the job_add tool
type JobAddParams struct {
	Title       string `json:"title"`
	Description string `json:"description" jsonschema:"Rich text (HTML) job description"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Level       string `json:"level" jsonschema:"e.g. Beginner level, Intermediate level, Senior level"`
	Salary      int    `json:"salary"`
}

// WithJobAdd registers the job_add tool
func WithJobAdd(manager *job.Manager) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_add",
			Description: "Publish a job for the logged-in recruiter",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobAddParams) (*sdkmcp.CallToolResult, any, error) {
			j, err := manager.AddJob(ctx, domain.NewJob{
				Title:       params.Title,
				Description: params.Description,
				Location:    params.Location,
				Category:    params.Category,
				Level:       params.Level,
				Salary:      params.Salary,
			})
			if err != nil {
				return errorResult(reg.log, "job_add", err)
			}
			return jsonResult(toJobView(j))
		})
	}
}

// JobVisibilityParams defines the arguments for the job_visibility tool
type JobVisibilityParams struct {
	JobID int64 `json:"job_id"`
}

// WithJobVisibility registers the job_visibility tool
func WithJobVisibility(manager *job.Manager) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_visibility",
			Description: "Show or hide one of the recruiter's jobs",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobVisibilityParams) (*sdkmcp.CallToolResult, any, error) {
			j, err := manager.ToggleVisibility(ctx, params.JobID)
			if err != nil {
				return errorResult(reg.log, "job_visibility", err)
			}
			return jsonResult(toJobView(j))
		})
	}
}

// WithRecruiterApplications registers the recruiter_applications tool
func WithRecruiterApplications(lifecycle *application.Lifecycle) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "recruiter_applications",
			Description: "Load every application to the recruiter's jobs",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ struct{}) (*sdkmcp.CallToolResult, any, error) {
			apps, err := lifecycle.LoadCompanyApplications(ctx)
			if err != nil {
				return errorResult(reg.log, "recruiter_applications", err)
			}
			return jsonResult(toApplicationViews(apps))
		})
	}
}

// ApplicationStatusParams defines the arguments for the application_status tool
type ApplicationStatusParams struct {
	ApplicationID int64  `json:"application_id"`
	Status        string `json:"status" jsonschema:"Pending, Accepted or Rejected"`
}

// WithApplicationStatus registers the application_status tool
func WithApplicationStatus(changer application.StatusChanger) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "application_status",
			Description: "Accept or reject an application loaded by recruiter_applications",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ApplicationStatusParams) (*sdkmcp.CallToolResult, any, error) {
			app, err := changer.SetStatus(ctx, params.ApplicationID, domain.ApplicationStatus(params.Status))
			if err != nil {
				return errorResult(reg.log, "application_status", err)
			}
			return jsonResult(toApplicationView(app))
		})
	}
}

// ApplicationsExportParams defines the arguments for the applications_export tool
type ApplicationsExportParams struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name, Applications by default"`
	Replace       bool   `json:"replace,omitempty" jsonschema:"Clear the tab and write a header row first"`
	Reload        bool   `json:"reload,omitempty" jsonschema:"Reload applications from the API before export"`
}

// WithApplicationsExport registers the applications_export tool
func WithApplicationsExport(lifecycle *application.Lifecycle, exporter *export.Exporter) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "applications_export",
			Description: "Export the recruiter's applications to a Google Sheet",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params ApplicationsExportParams) (*sdkmcp.CallToolResult, any, error) {
			apps, err := lifecycle.CompanyApplications(ctx)
			if err != nil {
				return errorResult(reg.log, "applications_export", err)
			}
			if params.Reload || len(apps) == 0 {
				if apps, err = lifecycle.LoadCompanyApplications(ctx); err != nil {
					return errorResult(reg.log, "applications_export", err)
				}
			}

			res, err := exporter.Export(ctx, export.Target{
				SpreadsheetID: params.SpreadsheetID,
				Tab:           params.Tab,
				Replace:       params.Replace,
			}, apps)
			if err != nil {
				return errorResult(reg.log, "applications_export", err)
			}
			return jsonResult(res)
		})
	}
}
