package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/application"
	"github.com/honeycarbs/jobzone/internal/domain/job"
	"github.com/honeycarbs/jobzone/pkg/richtext"
)

// JobSearchParams defines the arguments for the job_search tool
type JobSearchParams struct {
	Refresh          bool     `json:"refresh,omitempty" jsonschema:"Reload the job list from the API first"`
	ToggleCategories []string `json:"toggle_categories,omitempty" jsonschema:"Categories to add to or remove from the selection"`
	ToggleLocations  []string `json:"toggle_locations,omitempty" jsonschema:"Locations to add to or remove from the selection"`
	Title            *string  `json:"title,omitempty" jsonschema:"Case-insensitive title search text"`
	Location         *string  `json:"location,omitempty" jsonschema:"Case-insensitive location search text"`
	Clear            string   `json:"clear,omitempty" jsonschema:"Search field to clear: title or location"`
}

// JobPageParams defines the arguments for the job_page tool
type JobPageParams struct {
	Action string `json:"action" jsonschema:"next, prev or jump"`
	Page   int    `json:"page,omitempty" jsonschema:"Target page for jump"`
}

// JobDetailParams defines the arguments for the job_detail tool
type JobDetailParams struct {
	JobID          int64  `json:"job_id" jsonschema:"Job identifier"`
	CandidateEmail string `json:"candidate_email,omitempty" jsonschema:"Report this candidate's application status"`
}

// WithJobSearch registers the job_search tool
func WithJobSearch(board *job.Board) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_search",
			Description: "Filter the visible job listing by category, location and search text; any change returns to page 1",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobSearchParams) (*sdkmcp.CallToolResult, any, error) {
			view := board.View()
			if params.Refresh || view.RefreshedAt.IsZero() {
				v, err := board.Refresh(ctx)
				if err != nil {
					return errorResult(reg.log, "job_search", err)
				}
				view = v
			}

			for _, c := range params.ToggleCategories {
				view = board.ToggleCategory(c)
			}
			for _, l := range params.ToggleLocations {
				view = board.ToggleLocation(l)
			}

			if params.Title != nil || params.Location != nil {
				search := view.Search
				if params.Title != nil {
					search.Title = strings.TrimSpace(*params.Title)
				}
				if params.Location != nil {
					search.Location = strings.TrimSpace(*params.Location)
				}
				view = board.SetSearch(search)
			}

			if params.Clear != "" {
				v, err := board.ClearSearchField(job.SearchField(params.Clear))
				if err != nil {
					return errorResult(reg.log, "job_search", err)
				}
				view = v
			}

			return jsonResult(toBoardView(view))
		})
	}
}

// WithJobPage registers the job_page tool
func WithJobPage(board *job.Board) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_page",
			Description: "Move through the filtered job listing; the page never leaves the valid range",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobPageParams) (*sdkmcp.CallToolResult, any, error) {
			var view job.View
			switch params.Action {
			case "next":
				view = board.Next()
			case "prev":
				view = board.Prev()
			case "jump":
				view = board.Jump(params.Page)
			default:
				err := domain.NewValidationError(fmt.Sprintf("unknown page action %q", params.Action), map[string]string{"action": "use next, prev or jump"})
				return errorResult(reg.log, "job_page", err)
			}
			return jsonResult(toBoardView(view))
		})
	}
}

type jobDetail struct {
	Job         jobView   `json:"job"`
	Description string    `json:"description"`
	Related     []jobView `json:"related"`
	Status      string    `json:"application_status,omitempty"`
}

// WithJobDetail registers the job_detail tool
func WithJobDetail(board *job.Board, lifecycle *application.Lifecycle) Option {
	return func(reg *registry) {
		sdkmcp.AddTool(reg.server, &sdkmcp.Tool{
			Name:        "job_detail",
			Description: "Show one job with up to four other jobs from the same company",
		}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobDetailParams) (*sdkmcp.CallToolResult, any, error) {
			j, related, err := board.GetJob(ctx, params.JobID)
			if err != nil {
				return errorResult(reg.log, "job_detail", err)
			}

			out := jobDetail{
				Job:         toJobView(j),
				Description: richtext.PlainText(j.Description),
				Related:     toJobViews(related),
			}
			if params.CandidateEmail != "" {
				out.Status = "Not applied"
				if status, ok := lifecycle.Status(j.ID, params.CandidateEmail); ok {
					out.Status = string(status)
				}
			}
			return jsonResult(out)
		})
	}
}
