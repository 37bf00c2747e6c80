package neo4j

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/honeycarbs/jobzone/internal/domain"

	pkgneo4j "github.com/honeycarbs/jobzone/pkg/neo4j"
)

func TestJobFromProps(t *testing.T) {
	posted := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	j := jobFromProps(map[string]any{
		"id":       int64(4),
		"title":    "Go Engineer",
		"salary":   int64(120000),
		"postedAt": posted.UnixMilli(),
		"visible":  true,
		"level":    nil,
	})

	if j.ID != 4 || j.Title != "Go Engineer" || j.Salary != 120000 || !j.Visible || !j.PostedAt.Equal(posted) || j.Level != "" {
		t.Fatalf("unexpected job %+v", j)
	}
}

func TestSnapshotIntegration(t *testing.T) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	client, err := pkgneo4j.NewClient(ctx, pkgneo4j.Config{
		URI:      uri,
		Username: os.Getenv("NEO4J_USERNAME"),
		Password: os.Getenv("NEO4J_PASSWORD"),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	defer client.Close(ctx)

	repo := NewJobRepository(client)
	takenAt := time.Now().UTC().Truncate(time.Millisecond)
	jobs := []domain.Job{
		{ID: 9001, Title: "First", Visible: true, Company: domain.CompanyRef{ID: 900, Name: "Acme"}},
		{ID: 9002, Title: "Second", Visible: true, Company: domain.CompanyRef{ID: 900, Name: "Acme"}},
	}

	if err := repo.SaveSnapshot(ctx, jobs, takenAt); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, at, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !at.Equal(takenAt) || len(got) != 2 || got[0].ID != 9001 || got[1].Company.Name != "Acme" {
		t.Fatalf("unexpected snapshot %v %+v", at, got)
	}
}
