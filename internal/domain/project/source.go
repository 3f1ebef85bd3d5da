package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/lfx-mentorship/internal/domain"
	"github.com/honeycarbs/lfx-mentorship/pkg/lfx"
)

// Source represents an external mentorship project listing
type Source interface {
	// e.g. "lfx"
	Name() string

	// Fetch returns the decoded listing and its normalized projects
	Fetch(ctx context.Context) (Batch, error)
}

// Batch is one fetched listing together with its projection
type Batch struct {
	Listing  *lfx.Listing
	Projects []domain.Project
}

// FromListing normalizes every record in listing into a domain.Project
func FromListing(source string, listing *lfx.Listing) ([]domain.Project, error) {
	if listing == nil {
		return nil, fmt.Errorf("project: listing is nil")
	}

	records, err := listing.Records()
	if err != nil {
		return nil, err
	}

	out := make([]domain.Project, 0, len(records))
	for _, rec := range records {
		mentors := make([]domain.MentorRef, 0, len(rec.Mentors))
		for _, m := range rec.Mentors {
			mentors = append(mentors, domain.MentorRef{
				Name:         m.Name.Text(),
				Email:        m.Email.Text(),
				Introduction: m.Introduction.Text(),
			})
		}

		term := domain.TermRef{
			Name:        rec.ProgramTerms.Name.Text(),
			ActiveUsers: rec.ProgramTerms.ActiveUsers.Text(),
		}
		if active, ok := rec.ProgramTerms.Active.Bool(); ok {
			term.Active = &active
		}

		name, repo := deref(rec.Name), deref(rec.Repository)
		out = append(out, domain.Project{
			ID:          domain.NewProjectID(repo, name),
			Name:        name,
			Repository:  repo,
			Industry:    deref(rec.Industry),
			Description: deref(rec.Description),
			Skills:      rec.Skills,
			Mentors:     mentors,
			Term:        term,
			Source:      source,
			FetchedAt:   listing.FetchedAt(),
		})
	}

	return out, nil
}

// Summarize converts projects into response-friendly summaries
func Summarize(projects []domain.Project) []domain.ProjectSummary {
	out := make([]domain.ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, domain.ProjectSummary{
			ID:         p.ID,
			Name:       p.Name,
			Repository: p.Repository,
			Industry:   p.Industry,
			Skills:     p.Skills,
			Mentors:    len(p.Mentors),
			Term:       p.Term.Name,
		})
	}
	return out
}

// Filter keeps projects matching every non-empty filter, case-insensitively
func Filter(projects []domain.Project, f domain.ProjectFilters) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if f.Industry != "" && !strings.EqualFold(p.Industry, f.Industry) {
			continue
		}
		if f.Skill != "" && !hasSkill(p.Skills, f.Skill) {
			continue
		}
		out = append(out, p)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out
}

func hasSkill(skills []string, want string) bool {
	for _, s := range skills {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
