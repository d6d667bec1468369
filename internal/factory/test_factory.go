package factory

import (
	"context"
	"time"

	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/mocks"
	"github.com/rlmatchup/rlmatchup-go/internal/services/cleanup"
	"github.com/rlmatchup/rlmatchup-go/internal/services/rating"
	"github.com/rlmatchup/rlmatchup-go/internal/storage/memory"
	"github.com/rlmatchup/rlmatchup-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Ratings maps epic IDs to the MMR the stub verifier reports.
	// Handles not in the map are reported as nonexistent accounts.
	Ratings map[string]int
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	ratings := make(map[string]int)
	verifier := rating.VerifierFunc(func(ctx context.Context, epicID string) (*rating.Result, error) {
		mmr, ok := ratings[epicID]
		if !ok {
			return &rating.Result{Exists: false}, nil
		}
		return &rating.Result{Exists: true, MMR: mmr}, nil
	})

	app := newWithDependencies(store, mockClock, mockRandom, verifier, cleanup.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Ratings:    ratings,
	}
}
