package lfx

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestFetchIntegration(t *testing.T) {
	if os.Getenv("LFX_INTEGRATION") == "" {
		t.Skip("LFX_INTEGRATION must be set to run this test against the live API")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	listing, err := Fetch(ctx, Config{BaseURL: os.Getenv("LFX_BASE_URL")})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	records, err := listing.Records()
	if err != nil {
		t.Fatalf("Records: %v", err)
	}

	if len(records) == 0 {
		t.Log("LFX listing returned zero projects; check upstream status")
		return
	}

	for i, rec := range records {
		if i >= 5 {
			break
		}
		t.Logf("Result %d: %s (%s) skills=%v", i+1, deref(rec.Name), deref(rec.Industry), rec.Skills)
	}
	t.Logf("LFX listing returned %d projects", len(records))
}
