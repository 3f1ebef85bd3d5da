package neo4j

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/lfx-mentorship/internal/repository"
	pkgneo4j "github.com/honeycarbs/lfx-mentorship/pkg/neo4j"
)

var _ repository.ProjectGraph = (*GraphRepository)(nil)

// GraphRepository answers skill-graph questions over stored projects
type GraphRepository struct {
	client *pkgneo4j.Client
}

// NewGraphRepository creates a graph repository
func NewGraphRepository(client *pkgneo4j.Client) *GraphRepository {
	return &GraphRepository{client: client}
}

// FindRelatedProjects ranks projects sharing skills with projectID
func (r *GraphRepository) FindRelatedProjects(ctx context.Context, projectID string, limit int) ([]repository.RelatedProject, error) {
	if limit <= 0 {
		limit = 10
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (p:Project {id: $id})-[:REQUIRES]->(s:Skill)<-[:REQUIRES]-(other:Project)
		WHERE other.id <> p.id
		WITH other, collect(DISTINCT s.name) AS sharedSkills
		RETURN other.id AS id, other.name AS name, other.repository AS repository,
		       sharedSkills, size(sharedSkills) AS relevance
		ORDER BY relevance DESC, name ASC
		LIMIT $limit
	`

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, map[string]any{"id": projectID, "limit": limit})
		if err != nil {
			return nil, err
		}
		return records.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*neo4j.Record)
	related := make([]repository.RelatedProject, 0, len(records))
	for _, record := range records {
		related = append(related, repository.RelatedProject{
			ID:           getRecordString(record, "id"),
			Name:         getRecordString(record, "name"),
			Repository:   getRecordString(record, "repository"),
			SharedSkills: getStringSlice(record, "sharedSkills"),
			Relevance:    getRecordInt(record, "relevance"),
		})
	}

	return related, nil
}

// TopSkills counts how many stored projects require each skill
func (r *GraphRepository) TopSkills(ctx context.Context, limit int) ([]repository.SkillCount, error) {
	if limit <= 0 {
		limit = 20
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	query := `
		MATCH (s:Skill)<-[:REQUIRES]-(p:Project)
		RETURN s.name AS skill, count(DISTINCT p) AS projects
		ORDER BY projects DESC, skill ASC
		LIMIT $limit
	`

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, query, map[string]any{"limit": limit})
		if err != nil {
			return nil, err
		}
		return records.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*neo4j.Record)
	counts := make([]repository.SkillCount, 0, len(records))
	for _, record := range records {
		counts = append(counts, repository.SkillCount{
			Skill:    getRecordString(record, "skill"),
			Projects: getRecordInt(record, "projects"),
		})
	}

	return counts, nil
}

func getStringProp(props map[string]any, key string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getTimeProp(props map[string]any, key string) time.Time {
	if v, ok := props[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
		if dt, ok := v.(neo4j.LocalDateTime); ok {
			return dt.Time()
		}
	}
	return time.Time{}
}

func getStringFromMap(m map[string]any, key string) string {
	if v, ok := m[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getStringSlice(record *neo4j.Record, key string) []string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return nil
	}

	list, ok := val.([]any)
	if !ok {
		return nil
	}

	result := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

func getRecordString(record *neo4j.Record, key string) string {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return ""
	}
	s, _ := val.(string)
	return s
}

func getRecordInt(record *neo4j.Record, key string) int {
	val, ok := record.Get(key)
	if !ok || val == nil {
		return 0
	}
	if i, ok := val.(int64); ok {
		return int(i)
	}
	return 0
}
