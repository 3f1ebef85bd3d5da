package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID uniquely identifies a mentorship project
type ProjectID = uuid.UUID

// projectNamespace scopes name-based project IDs.
var projectNamespace = uuid.MustParse("6f1c9f0e-3c1a-5b8e-9d57-4c2f1a0b7e21")

// NewProjectID derives a stable ID from the repository link and project name,
// so re-syncing the same listing merges instead of duplicating.
func NewProjectID(repository, name string) ProjectID {
	return uuid.NewSHA1(projectNamespace, []byte(repository+"\x00"+name))
}

// MentorRef references a project mentor; empty fields were absent upstream
type MentorRef struct {
	Name         string
	Email        string
	Introduction string
}

// TermRef references the program term a project is listed under
type TermRef struct {
	Name        string
	ActiveUsers string
	Active      *bool
}

// Project is the normalized mentorship project entity
type Project struct {
	ID          ProjectID
	Name        string
	Repository  string
	Industry    string
	Description string
	Skills      []string
	Mentors     []MentorRef
	Term        TermRef
	Source      string
	FetchedAt   time.Time
}

// ProjectFilters narrow a project listing
type ProjectFilters struct {
	Skill    string
	Industry string
	Limit    int
}

// ProjectSummary is the response-friendly project view
type ProjectSummary struct {
	ID         ProjectID `json:"id"`
	Name       string    `json:"name"`
	Repository string    `json:"repository"`
	Industry   string    `json:"industry"`
	Skills     []string  `json:"skills"`
	Mentors    int       `json:"mentors"`
	Term       string    `json:"term,omitempty"`
}

// SyncResult wraps the outcome of one fetch-and-store pass
type SyncResult struct {
	SnapshotID string
	Projects   []ProjectSummary
	FetchedAt  time.Time
	Stored     bool
}
