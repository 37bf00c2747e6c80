package mcp

import (
	"context"

	"github.com/honeycarbs/jobzone/internal/domain/application"
	"github.com/honeycarbs/jobzone/internal/domain/auth"
	"github.com/honeycarbs/jobzone/internal/domain/job"
	"github.com/honeycarbs/jobzone/internal/export"
	"github.com/honeycarbs/jobzone/internal/mcp/tools"
	"github.com/honeycarbs/jobzone/pkg/shutdown"
)

// Resources holds the services behind the MCP tools
type Resources struct {
	Board     *job.Board
	Manager   *job.Manager
	Lifecycle *application.Lifecycle
	Flow      *auth.Flow
	Exporter  *export.Exporter

	closers []shutdown.Stoppable
}

func newResources(
	board *job.Board,
	manager *job.Manager,
	lifecycle *application.Lifecycle,
	flow *auth.Flow,
	exporter *export.Exporter,
	store auth.SessionStore,
	graph snapshotClient,
) *Resources {
	res := &Resources{
		Board:     board,
		Manager:   manager,
		Lifecycle: lifecycle,
		Flow:      flow,
		Exporter:  exporter,
	}
	if s, ok := store.(shutdown.Stoppable); ok {
		res.closers = append(res.closers, s)
	}
	if graph.client != nil {
		res.closers = append(res.closers, graph.client)
	}
	return res
}

// toolOptions lists every tool backed by res
func (r *Resources) toolOptions() []tools.Option {
	return []tools.Option{
		tools.WithJobSearch(r.Board),
		tools.WithJobPage(r.Board),
		tools.WithJobDetail(r.Board, r.Lifecycle),
		tools.WithCandidateSync(r.Lifecycle),
		tools.WithResumeUpload(r.Lifecycle),
		tools.WithJobApply(r.Board, r.Lifecycle),
		tools.WithRecruiterAuth(r.Flow),
		tools.WithRecruiterJobs(r.Manager),
		tools.WithJobAdd(r.Manager),
		tools.WithJobVisibility(r.Manager),
		tools.WithRecruiterApplications(r.Lifecycle),
		tools.WithApplicationStatus(r.Lifecycle),
		tools.WithApplicationsExport(r.Lifecycle, r.Exporter),
	}
}

// Shutdown releases the session store and graph connections
func (r *Resources) Shutdown(ctx context.Context) error {
	return shutdown.Stop(ctx, r.closers...)
}
