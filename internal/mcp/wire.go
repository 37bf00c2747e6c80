//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobzone/internal/config"
	"github.com/honeycarbs/jobzone/pkg/jobzone"
	"github.com/honeycarbs/jobzone/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, log *logging.Logger) (*Resources, error) {
	wire.Build(
		// Infrastructure - job board API
		provideAPIConfig,
		jobzone.NewClient,
		provideGateway,

		// Infrastructure - storage
		provideSessionStore,
		provideSnapshotClient,
		provideSnapshotRepository,

		// Services
		provideFlow,
		provideBoard,
		provideManager,
		provideLifecycle,
		provideExporter,

		newResources,
	)

	return &Resources{}, nil
}
