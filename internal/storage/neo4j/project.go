package neo4j

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/lfx-mentorship/internal/domain"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"

	pkgneo4j "github.com/honeycarbs/lfx-mentorship/pkg/neo4j"
)

// Ensure ProjectRepository implements project.Repository
var _ project.Repository = (*ProjectRepository)(nil)

// ProjectRepository implements project.Repository with Neo4j
type ProjectRepository struct {
	client *pkgneo4j.Client
}

// NewProjectRepository creates a ProjectRepository with a Neo4j client
func NewProjectRepository(client *pkgneo4j.Client) *ProjectRepository {
	return &ProjectRepository{
		client: client,
	}
}

const upsertProjectsQuery = `
	UNWIND $projects AS project
	MERGE (p:Project {id: project.id})
	SET p.name = project.name,
	    p.repository = project.repository,
	    p.industry = project.industry,
	    p.description = project.description,
	    p.source = project.source,
	    p.fetchedAt = datetime({epochMillis: project.fetchedAt})
	WITH p, project
	OPTIONAL MATCH (p)-[old:REQUIRES|IN_TERM]->()
	DELETE old
	WITH DISTINCT p, project
	OPTIONAL MATCH (:Mentor)-[oldm:MENTORS]->(p)
	DELETE oldm
	WITH DISTINCT p, project
	FOREACH (skill IN project.skills |
		MERGE (s:Skill {name: skill})
		MERGE (p)-[:REQUIRES]->(s)
	)
	FOREACH (mentor IN project.mentors |
		MERGE (m:Mentor {key: mentor.key})
		SET m.name = mentor.name, m.email = mentor.email
		MERGE (m)-[r:MENTORS]->(p)
		SET r.introduction = mentor.introduction
	)
	FOREACH (term IN CASE WHEN project.term.name = "" THEN [] ELSE [project.term] END |
		MERGE (t:ProgramTerm {name: term.name})
		SET t.activeUsers = term.activeUsers, t.active = term.active
		MERGE (p)-[:IN_TERM]->(t)
	)
`

// UpsertProjects merges projects with their skills, mentors and program term.
// Edges from an earlier sync are replaced so removed skills or mentors disappear.
func (r *ProjectRepository) UpsertProjects(ctx context.Context, projects []domain.Project) error {
	if len(projects) == 0 {
		return nil
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close(ctx)

	projectsData := make([]map[string]any, 0, len(projects))
	for _, p := range projects {
		mentorsData := make([]map[string]any, 0, len(p.Mentors))
		for _, m := range p.Mentors {
			key := mentorKey(m)
			if key == "" {
				continue
			}
			mentorsData = append(mentorsData, map[string]any{
				"key":          key,
				"name":         m.Name,
				"email":        m.Email,
				"introduction": m.Introduction,
			})
		}

		term := map[string]any{
			"name":        p.Term.Name,
			"activeUsers": p.Term.ActiveUsers,
			"active":      nil,
		}
		if p.Term.Active != nil {
			term["active"] = *p.Term.Active
		}

		skills := make([]string, 0, len(p.Skills))
		skills = append(skills, p.Skills...)

		projectsData = append(projectsData, map[string]any{
			"id":          p.ID.String(),
			"name":        p.Name,
			"repository":  p.Repository,
			"industry":    p.Industry,
			"description": p.Description,
			"source":      p.Source,
			"fetchedAt":   p.FetchedAt.UnixMilli(),
			"skills":      skills,
			"mentors":     mentorsData,
			"term":        term,
		})
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, upsertProjectsQuery, map[string]any{"projects": projectsData})
		if err != nil {
			return nil, fmt.Errorf("failed to execute project upsert query: %w", err)
		}
		return result.Consume(ctx)
	})

	return err
}

const findProjectsQuery = `
	MATCH (p:Project)
	WHERE p.id IN $ids
	OPTIONAL MATCH (p)-[:REQUIRES]->(s:Skill)
	OPTIONAL MATCH (m:Mentor)-[r:MENTORS]->(p)
	OPTIONAL MATCH (p)-[:IN_TERM]->(t:ProgramTerm)
	RETURN p,
	       collect(DISTINCT s.name) AS skills,
	       collect(DISTINCT {name: m.name, email: m.email, introduction: r.introduction}) AS mentors,
	       head(collect(DISTINCT t)) AS t
`

// FindByIDs loads projects by ID
func (r *ProjectRepository) FindByIDs(ctx context.Context, ids []domain.ProjectID) ([]domain.Project, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	session := r.client.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	idStrings := make([]string, 0, len(ids))
	for _, id := range ids {
		idStrings = append(idStrings, id.String())
	}

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		records, err := tx.Run(ctx, findProjectsQuery, map[string]any{"ids": idStrings})
		if err != nil {
			return nil, err
		}
		return records.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*neo4j.Record)
	projects := make([]domain.Project, 0, len(records))
	for _, record := range records {
		p, ok := parseProjectRecord(record)
		if !ok {
			continue
		}
		projects = append(projects, p)
	}

	return projects, nil
}

func parseProjectRecord(record *neo4j.Record) (domain.Project, bool) {
	projectVal, ok := record.Get("p")
	if !ok {
		return domain.Project{}, false
	}
	projectNode, ok := projectVal.(neo4j.Node)
	if !ok {
		return domain.Project{}, false
	}

	props := projectNode.Props
	id, err := uuid.Parse(getStringProp(props, "id"))
	if err != nil {
		return domain.Project{}, false
	}

	p := domain.Project{
		ID:          id,
		Name:        getStringProp(props, "name"),
		Repository:  getStringProp(props, "repository"),
		Industry:    getStringProp(props, "industry"),
		Description: getStringProp(props, "description"),
		Source:      getStringProp(props, "source"),
		FetchedAt:   getTimeProp(props, "fetchedAt"),
		Skills:      getStringSlice(record, "skills"),
	}

	if mentorsVal, ok := record.Get("mentors"); ok {
		if list, ok := mentorsVal.([]any); ok {
			for _, mv := range list {
				m, ok := mv.(map[string]any)
				if !ok {
					continue
				}
				ref := domain.MentorRef{
					Name:         getStringFromMap(m, "name"),
					Email:        getStringFromMap(m, "email"),
					Introduction: getStringFromMap(m, "introduction"),
				}
				if ref.Name == "" && ref.Email == "" {
					continue
				}
				p.Mentors = append(p.Mentors, ref)
			}
		}
	}

	if termVal, ok := record.Get("t"); ok && termVal != nil {
		if termNode, ok := termVal.(neo4j.Node); ok {
			p.Term = domain.TermRef{
				Name:        getStringProp(termNode.Props, "name"),
				ActiveUsers: getStringProp(termNode.Props, "activeUsers"),
			}
			if v, ok := termNode.Props["active"].(bool); ok {
				p.Term.Active = &v
			}
		}
	}

	return p, true
}

// mentorKey prefers email; mentors without email or name cannot be merged.
func mentorKey(m domain.MentorRef) string {
	if m.Email != "" {
		return "email:" + m.Email
	}
	if m.Name != "" {
		return "name:" + m.Name
	}
	return ""
}
