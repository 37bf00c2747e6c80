package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/job"

	pkgneo4j "github.com/honeycarbs/jobzone/pkg/neo4j"
)

// Ensure JobRepository implements job.SnapshotRepository
var _ job.SnapshotRepository = (*JobRepository)(nil)

const snapshotID = "visible_jobs"

// JobRepository keeps the last visible job listing in Neo4j. Jobs and their
// companies are merged as nodes; the snapshot node links to each job with its
// listing position.
type JobRepository struct {
	client *pkgneo4j.Client
}

// NewJobRepository creates a JobRepository with a Neo4j client
func NewJobRepository(client *pkgneo4j.Client) *JobRepository {
	return &JobRepository{
		client: client,
	}
}

// SaveSnapshot replaces the stored listing with jobs
func (r *JobRepository) SaveSnapshot(ctx context.Context, jobs []domain.Job, takenAt time.Time) error {
	session := r.client.NewSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	query := `
		MERGE (s:Snapshot {id: $snapshotId})
		SET s.takenAt = $takenAt
		WITH s
		OPTIONAL MATCH (s)-[old:INCLUDES]->(:Job)
		DELETE old
		WITH DISTINCT s
		UNWIND $jobs AS job
		MERGE (j:Job {id: job.id})
		SET j.title = job.title,
		    j.description = job.description,
		    j.location = job.location,
		    j.category = job.category,
		    j.level = job.level,
		    j.salary = job.salary,
		    j.postedAt = job.postedAt,
		    j.visible = job.visible
		MERGE (c:Company {id: job.company.id})
		SET c.name = job.company.name,
		    c.email = job.company.email,
		    c.image = job.company.image
		MERGE (j)-[:POSTED_BY]->(c)
		CREATE (s)-[:INCLUDES {position: job.position}]->(j)
	`

	jobsData := make([]map[string]any, 0, len(jobs))
	for i, j := range jobs {
		jobsData = append(jobsData, map[string]any{
			"id":          j.ID,
			"position":    i,
			"title":       j.Title,
			"description": j.Description,
			"location":    j.Location,
			"category":    j.Category,
			"level":       j.Level,
			"salary":      j.Salary,
			"postedAt":    j.PostedAt.UnixMilli(),
			"visible":     j.Visible,
			"company": map[string]any{
				"id":    j.Company.ID,
				"name":  j.Company.Name,
				"email": j.Company.Email,
				"image": j.Company.Image,
			},
		})
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{
			"snapshotId": snapshotID,
			"takenAt":    takenAt.UnixMilli(),
			"jobs":       jobsData,
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return fmt.Errorf("neo4j: save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored listing in its saved order
func (r *JobRepository) LoadSnapshot(ctx context.Context) ([]domain.Job, time.Time, error) {
	session := r.client.NewSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (s:Snapshot {id: $snapshotId})
		OPTIONAL MATCH (s)-[inc:INCLUDES]->(j:Job)
		OPTIONAL MATCH (j)-[:POSTED_BY]->(c:Company)
		RETURN s.takenAt AS takenAt, j, c
		ORDER BY inc.position
	`

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, query, map[string]any{"snapshotId": snapshotID})
		if err != nil {
			return nil, err
		}
		return result.Collect(ctx)
	})
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("neo4j: load snapshot: %w", err)
	}

	records := out.([]*neo4j.Record)
	if len(records) == 0 {
		return nil, time.Time{}, nil
	}

	var takenAt time.Time
	jobs := make([]domain.Job, 0, len(records))
	for _, record := range records {
		if v, ok := record.Get("takenAt"); ok {
			if ms, ok := v.(int64); ok {
				takenAt = time.UnixMilli(ms).UTC()
			}
		}

		jobVal, _ := record.Get("j")
		jobNode, ok := jobVal.(neo4j.Node)
		if !ok {
			continue
		}

		j := jobFromProps(jobNode.Props)
		if companyVal, _ := record.Get("c"); companyVal != nil {
			if companyNode, ok := companyVal.(neo4j.Node); ok {
				j.Company = domain.CompanyRef{
					ID:    int64Prop(companyNode.Props, "id"),
					Name:  stringProp(companyNode.Props, "name"),
					Email: stringProp(companyNode.Props, "email"),
					Image: stringProp(companyNode.Props, "image"),
				}
			}
		}
		jobs = append(jobs, j)
	}

	return jobs, takenAt, nil
}

func jobFromProps(props map[string]any) domain.Job {
	j := domain.Job{
		ID:          int64Prop(props, "id"),
		Title:       stringProp(props, "title"),
		Description: stringProp(props, "description"),
		Location:    stringProp(props, "location"),
		Category:    stringProp(props, "category"),
		Level:       stringProp(props, "level"),
		Salary:      int(int64Prop(props, "salary")),
	}
	if ms := int64Prop(props, "postedAt"); ms != 0 {
		j.PostedAt = time.UnixMilli(ms).UTC()
	}
	if v, ok := props["visible"].(bool); ok {
		j.Visible = v
	}
	return j
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func int64Prop(props map[string]any, key string) int64 {
	n, _ := props[key].(int64)
	return n
}
