package analysis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/honeycarbs/lfx-mentorship/internal/domain"
	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/internal/repository"
)

const defaultLimit = 10

// ErrGraphUnavailable is returned for graph-only questions when no graph store is configured
var ErrGraphUnavailable = errors.New("analysis: graph store not configured")

// SkillDemand ranks skills by how many projects ask for them
type SkillDemand struct {
	Skills      []repository.SkillCount
	Projects    int
	Origin      string
	GeneratedAt time.Time
}

// Service answers skill questions from the graph, or from the listing when no graph is set
type Service struct {
	graph    repository.ProjectGraph
	projects project.Service
}

// NewService creates an analysis service; graph may be nil
func NewService(graph repository.ProjectGraph, projects project.Service) *Service {
	return &Service{graph: graph, projects: projects}
}

// SkillDemand returns the top limit skills across stored or listed projects
func (s *Service) SkillDemand(ctx context.Context, limit int) (SkillDemand, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	if s.graph != nil {
		skills, err := s.graph.TopSkills(ctx, limit)
		if err != nil {
			return SkillDemand{}, fmt.Errorf("top skills: %w", err)
		}
		return SkillDemand{
			Skills:      skills,
			Origin:      "graph",
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	if s.projects == nil {
		return SkillDemand{}, fmt.Errorf("analysis: project service not configured")
	}

	batch, origin, err := s.currentBatch(ctx)
	if err != nil {
		return SkillDemand{}, err
	}

	return SkillDemand{
		Skills:      CountSkills(batch.Projects, limit),
		Projects:    len(batch.Projects),
		Origin:      origin,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// Related returns projects sharing skills with projectID
func (s *Service) Related(ctx context.Context, projectID string, limit int) ([]repository.RelatedProject, error) {
	if s.graph == nil {
		return nil, ErrGraphUnavailable
	}
	if projectID == "" {
		return nil, fmt.Errorf("analysis: project id is required")
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.graph.FindRelatedProjects(ctx, projectID, limit)
}

// currentBatch prefers the stored snapshot and falls back to a live fetch
func (s *Service) currentBatch(ctx context.Context) (project.Batch, string, error) {
	batch, err := s.projects.Latest(ctx)
	if err == nil {
		return batch, "snapshot", nil
	}
	if !errors.Is(err, project.ErrNoSnapshot) {
		return project.Batch{}, "", err
	}

	batch, err = s.projects.Fetch(ctx)
	if err != nil {
		return project.Batch{}, "", err
	}
	return batch, "live", nil
}

// CountSkills counts each skill once per project, most requested first
func CountSkills(projects []domain.Project, limit int) []repository.SkillCount {
	counts := make(map[string]int)
	for _, p := range projects {
		seen := make(map[string]struct{}, len(p.Skills))
		for _, skill := range p.Skills {
			if skill == "" {
				continue
			}
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			counts[skill]++
		}
	}

	out := make([]repository.SkillCount, 0, len(counts))
	for skill, n := range counts {
		out = append(out, repository.SkillCount{Skill: skill, Projects: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Projects != out[j].Projects {
			return out[i].Projects > out[j].Projects
		}
		return out[i].Skill < out[j].Skill
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
