package lfx

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Config defines LFX Mentorship API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	PageSize   int
	// Headers are merged over the default browser-like header set
	Headers http.Header
	// Limiter throttles repeated fetches from long-running processes
	Limiter *rate.Limiter
}

// Client queries the LFX Mentorship project listing
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	pageSize   int
	headers    http.Header
	limiter    *rate.Limiter
}

// Record is the flattened view of a single project hit. Top-level text
// fields are nil when the upstream sends null or omits them.
type Record struct {
	Name         *string      `json:"name"`
	Repository   *string      `json:"repository"`
	Industry     *string      `json:"industry"`
	Description  *string      `json:"description"`
	Skills       []string     `json:"skills"`
	Mentors      []Mentor     `json:"mentors"`
	ProgramTerms ProgramTerms `json:"programTerms"`
}

// Mentor fields pass through whatever JSON the upstream sent.
type Mentor struct {
	Name         Value `json:"name"`
	Email        Value `json:"email"`
	Introduction Value `json:"introduction"`
}

// ProgramTerms summarizes the first program term of a project only.
type ProgramTerms struct {
	ActiveUsers Value `json:"activeUsers"`
	Name        Value `json:"name"`
	Active      Value `json:"Active"`
}

// paginateResponse is the success shape of /projects/cache/paginate.
// Hits stay raw so that one malformed hit is reported on its own.
type paginateResponse struct {
	Hits *struct {
		Hits []json.RawMessage `json:"hits"`
	} `json:"hits"`
}

type hit struct {
	Source *projectSource `json:"_source"`
}

type projectSource struct {
	Name            *string          `json:"name"`
	RepoLink        *string          `json:"repoLink"`
	Industry        *string          `json:"industry"`
	Description     *string          `json:"description"`
	ApprenticeNeeds *apprenticeNeeds `json:"apprenticeNeeds"`
	ProgramTerms    []programTerm    `json:"programTerms"`
}

type apprenticeNeeds struct {
	Skills  []string       `json:"skills"`
	Mentors []mentorSource `json:"mentors"`
}

type mentorSource struct {
	Name         Value `json:"name"`
	Email        Value `json:"email"`
	Introduction Value `json:"introduction"`
}

type programTerm struct {
	ActiveUsers Value `json:"activeUsers"`
	Name        Value `json:"name"`
	Active      Value `json:"Active"`
}
