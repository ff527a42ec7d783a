// Package roster loads the starting lineup and bench tables into one
// combined, status-tagged roster.
package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/pitchside/internal/domain/model"
)

// Source is a single tabular record set.
type Source interface {
	// Name identifies the source in errors and logs.
	Name() string
	// Read returns every row in source order. The Status field is ignored;
	// the loader stamps it.
	Read(ctx context.Context) ([]model.Player, error)
}

// Roster is the combined, ordered result of one load.
type Roster struct {
	// Players holds all starters in source order followed by all bench players.
	Players []model.Player
	// Starting and Bench are the row counts read from each source.
	Starting int
	Bench    int
	// DuplicateIDs lists player ids seen more than once, in the order the
	// repeats were met. Duplicates are kept in Players.
	DuplicateIDs []int
}

// Len returns the number of loaded players.
func (r Roster) Len() int { return len(r.Players) }

// Load reads starting then bench and concatenates them. Any source failure
// aborts the load.
func Load(ctx context.Context, starting, bench Source) (Roster, error) {
	startRows, err := read(ctx, starting, model.StatusStarting)
	if err != nil {
		return Roster{}, err
	}
	benchRows, err := read(ctx, bench, model.StatusBench)
	if err != nil {
		return Roster{}, err
	}

	r := Roster{
		Players:  make([]model.Player, 0, len(startRows)+len(benchRows)),
		Starting: len(startRows),
		Bench:    len(benchRows),
	}
	seen := make(map[int]struct{}, len(startRows)+len(benchRows))
	for _, rows := range [][]model.Player{startRows, benchRows} {
		for _, p := range rows {
			if _, dup := seen[p.PlayerID]; dup {
				r.DuplicateIDs = append(r.DuplicateIDs, p.PlayerID)
			}
			seen[p.PlayerID] = struct{}{}
			r.Players = append(r.Players, p)
		}
	}
	return r, nil
}

func read(ctx context.Context, src Source, status model.Status) ([]model.Player, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no %q source configured", ErrMissingSource, status)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	rows, err := src.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrMissingSource) || errors.Is(err, ErrMalformedSource) ||
			errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("read %s: %w", src.Name(), err)
		}
		return nil, fmt.Errorf("read %s: %w: %w", src.Name(), ErrMissingSource, err)
	}
	for i := range rows {
		rows[i].Status = status
	}
	return rows, nil
}
