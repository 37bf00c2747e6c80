package mcp

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobzone/internal/config"
	"github.com/honeycarbs/jobzone/internal/domain/application"
	"github.com/honeycarbs/jobzone/internal/domain/auth"
	"github.com/honeycarbs/jobzone/internal/domain/job"
	"github.com/honeycarbs/jobzone/internal/export"
	"github.com/honeycarbs/jobzone/internal/gateway"
	storage "github.com/honeycarbs/jobzone/internal/storage/neo4j"
	"github.com/honeycarbs/jobzone/internal/storage/session"
	"github.com/honeycarbs/jobzone/pkg/jobzone"
	"github.com/honeycarbs/jobzone/pkg/logging"
	n4j "github.com/honeycarbs/jobzone/pkg/neo4j"
	sheetsclient "github.com/honeycarbs/jobzone/pkg/sheets"
)

// snapshotClient is the optional Neo4j connection; client is nil when Neo4j is not configured
type snapshotClient struct {
	client *n4j.Client
}

// provideAPIConfig extracts job board API settings from main config
func provideAPIConfig(cfg config.Config) jobzone.Config {
	return jobzone.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}
}

func provideGateway(client *jobzone.Client) (*gateway.Gateway, error) {
	return gateway.New(client)
}

// provideSessionStore picks Redis, then a session file, then process memory
func provideSessionStore(ctx context.Context, cfg config.Config, log *logging.Logger) (auth.SessionStore, error) {
	switch {
	case cfg.Session.RedisURL != "":
		store, err := session.NewRedisStore(ctx, cfg.Session.RedisURL, 0)
		if err != nil {
			return nil, err
		}
		log.Info("recruiter sessions stored in redis")
		return store, nil
	case cfg.Session.File != "":
		store, err := session.NewFileStore(cfg.Session.File)
		if err != nil {
			return nil, err
		}
		log.Info("recruiter sessions stored on disk", "path", cfg.Session.File)
		return store, nil
	default:
		log.Warn("SESSION_FILE and REDIS_URL not set, recruiter sessions will not survive a restart")
		return session.NewMemoryStore(), nil
	}
}

func provideSnapshotClient(ctx context.Context, cfg config.Config, log *logging.Logger) (snapshotClient, error) {
	if !cfg.Neo4jEnabled() {
		return snapshotClient{}, nil
	}

	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		return snapshotClient{}, err
	}
	log.Info("Neo4j snapshot cache enabled", "uri", cfg.Neo4j.URI)
	return snapshotClient{client: client}, nil
}

func provideSnapshotRepository(graph snapshotClient) job.SnapshotRepository {
	if graph.client == nil {
		return nil
	}
	return storage.NewJobRepository(graph.client)
}

func provideBoard(gw *gateway.Gateway, repo job.SnapshotRepository, log *logging.Logger) (*job.Board, error) {
	return job.NewBoard(
		job.WithSource(gw),
		job.WithRepository(repo),
		job.WithLogger(log),
	)
}

func provideFlow(gw *gateway.Gateway, store auth.SessionStore, log *logging.Logger) (*auth.Flow, error) {
	return auth.NewFlow(gw, store, auth.WithLogger(log))
}

func provideManager(gw *gateway.Gateway, flow *auth.Flow, log *logging.Logger) (*job.Manager, error) {
	return job.NewManager(gw, gw, flow, job.WithLogger(log))
}

func provideLifecycle(gw *gateway.Gateway, flow *auth.Flow, cfg config.Config, log *logging.Logger) (*application.Lifecycle, error) {
	return application.NewLifecycle(gw, flow,
		application.WithLogger(log),
		application.WithFinalDecisions(cfg.FinalDecisions),
	)
}

// provideExporter builds the Sheets exporter. Export stays available as a
// tool without credentials and reports that it is not configured.
func provideExporter(ctx context.Context, cfg config.Config, log *logging.Logger) *export.Exporter {
	if cfg.SheetsCredentialsPath == "" {
		return export.New(nil)
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.SheetsCredentialsPath})
	if err != nil {
		log.Warn("failed to initialize Google Sheets client", "err", fmt.Errorf("sheets export disabled: %w", err))
		return export.New(nil)
	}
	return export.New(client)
}
