package sampledata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/pitchside/pkg/logger"
)

// ErrMismatch is returned when a running service does not report the
// sample squad.
var ErrMismatch = errors.New("dashboard does not match sample squad")

// dashboardReply is the subset of the dashboard payload that Verify reads.
type dashboardReply struct {
	Summary struct {
		TotalPlayers int `json:"total_players"`
	} `json:"summary"`
	Pitch []json.RawMessage `json:"pitch"`
	Bench []json.RawMessage `json:"bench"`
}

// Verify fetches the unfiltered dashboard from a service loaded with the
// sample files and checks the squad sizes.
func Verify(ctx context.Context, baseURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/api/v1/dashboard", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch dashboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch dashboard: status %d", resp.StatusCode)
	}

	var got dashboardReply
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		return fmt.Errorf("decode dashboard: %w", err)
	}

	starting, bench := len(startingRows), len(benchRows)
	if got.Summary.TotalPlayers != starting+bench {
		return fmt.Errorf("%w: total players %d, want %d", ErrMismatch, got.Summary.TotalPlayers, starting+bench)
	}
	if len(got.Pitch) != starting {
		return fmt.Errorf("%w: pitch players %d, want %d", ErrMismatch, len(got.Pitch), starting)
	}
	if len(got.Bench) != bench {
		return fmt.Errorf("%w: bench rows %d, want %d", ErrMismatch, len(got.Bench), bench)
	}
	logger.Get().Info(ctx, "dashboard matches sample squad",
		logger.Int("players", got.Summary.TotalPlayers))
	return nil
}
