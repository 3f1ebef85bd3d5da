package lfx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/lfx-mentorship/pkg/lfx"
)

func TestSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_source":{"name":"Proj1","repoLink":"https://x",
			"apprenticeNeeds":{"skills":["Go"],"mentors":[]},"programTerms":[{"name":"T1"}]}}]}}`))
	}))
	defer srv.Close()

	client, err := lfx.NewClient(lfx.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	src, err := NewSource(client)
	require.NoError(t, err)
	assert.Equal(t, "lfx", src.Name())

	batch, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, batch.Projects, 1)
	assert.Equal(t, "Proj1", batch.Projects[0].Name)
	assert.Equal(t, SourceName, batch.Projects[0].Source)
	assert.Equal(t, 1, batch.Listing.Len())
}

func TestSource_FetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Internal server error"}`))
	}))
	defer srv.Close()

	client, err := lfx.NewClient(lfx.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	src, err := NewSource(client)
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	var fetchErr *lfx.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "Internal server error", fetchErr.Message)
}

func TestNewSource_RequiresClient(t *testing.T) {
	_, err := NewSource(nil)
	require.Error(t, err)
}
