package lfx

import (
	"context"
	"fmt"

	"github.com/honeycarbs/lfx-mentorship/internal/domain/project"
	"github.com/honeycarbs/lfx-mentorship/pkg/lfx"
)

// SourceName tags projects that came from the LFX Mentorship listing
const SourceName = "lfx"

// listingClient describes the subset of the LFX client used by the source.
type listingClient interface {
	Fetch(ctx context.Context) (*lfx.Listing, error)
}

// Source implements project.Source using the LFX Mentorship API
type Source struct {
	client listingClient
}

// NewSource builds an LFX source
func NewSource(client *lfx.Client) (*Source, error) {
	if client == nil {
		return nil, fmt.Errorf("lfx source: client is required")
	}
	return &Source{client: client}, nil
}

// Name returns source identifier
func (s *Source) Name() string {
	return SourceName
}

// Fetch queries the listing and returns normalized projects
func (s *Source) Fetch(ctx context.Context) (project.Batch, error) {
	if s == nil || s.client == nil {
		return project.Batch{}, fmt.Errorf("lfx source: client is nil")
	}

	listing, err := s.client.Fetch(ctx)
	if err != nil {
		return project.Batch{}, err
	}

	projects, err := project.FromListing(SourceName, listing)
	if err != nil {
		return project.Batch{}, err
	}

	return project.Batch{Listing: listing, Projects: projects}, nil
}

var _ project.Source = (*Source)(nil)
