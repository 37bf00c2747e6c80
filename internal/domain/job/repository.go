package job

import (
	"context"
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"
)

// SnapshotRepository keeps the last successfully fetched job list so discovery
// keeps working while the API is unreachable.
type SnapshotRepository interface {
	// SaveSnapshot replaces the stored snapshot with jobs, keeping their order
	SaveSnapshot(ctx context.Context, jobs []domain.Job, takenAt time.Time) error

	// LoadSnapshot returns the stored jobs in their saved order. An empty
	// repository returns no jobs and a zero time.
	LoadSnapshot(ctx context.Context) ([]domain.Job, time.Time, error)
}
