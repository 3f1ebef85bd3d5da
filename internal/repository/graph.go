package repository

import (
	"context"
)

// RelatedProject is a project connected to another via shared skills
type RelatedProject struct {
	ID           string
	Name         string
	Repository   string
	SharedSkills []string
	Relevance    int
}

// SkillCount is how many stored projects require a skill
type SkillCount struct {
	Skill    string
	Projects int
}

// ProjectGraph defines graph retrieval over stored projects
type ProjectGraph interface {
	FindRelatedProjects(ctx context.Context, projectID string, limit int) ([]RelatedProject, error)
	TopSkills(ctx context.Context, limit int) ([]SkillCount, error)
}
