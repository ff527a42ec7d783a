// Package service runs the roster pipeline and shapes its output for the
// HTTP API and the MCP tools.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/domain/filter"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/pitch"
	"github.com/okian/pitchside/internal/domain/roster"
	"github.com/okian/pitchside/internal/domain/stats"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

// Pipeline outcomes recorded in metrics.
const (
	OutcomeOK              = "ok"
	OutcomeMissingSource   = "missing_source"
	OutcomeMalformedSource = "malformed_source"
	OutcomeCanceled        = "canceled"
	OutcomeError           = "error"
)

// Radar chart range.
const (
	ratingMin = 0
	ratingMax = 100
)

// Service runs Load -> Filter -> Assign -> Aggregate on every call. Runs
// share only read-only configuration.
type Service struct {
	mu sync.RWMutex

	// Inputs
	starting roster.Source
	bench    roster.Source

	// Configuration
	layout      pitch.Layout
	assigner    *pitch.Assigner
	attributes  []model.Attribute
	ageBins     int
	clubName    string
	imageBase   string
	geoJSONURL  string
	exportSheet string

	// State
	started  bool
	runs     atomic.Int64
	failures atomic.Int64
	lastRun  atomic.Int64 // unix nanos

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		layout:      pitch.DefaultLayout(),
		attributes:  stats.SkillAttributes(),
		ageBins:     stats.DefaultAgeBins,
		clubName:    "Bristol City",
		imageBase:   "/media/players",
		exportSheet: repository.DefaultSheet,
	}

	for _, opt := range opts {
		opt(s)
	}
	s.assigner = pitch.NewAssigner(s.layout)

	return s
}

// Start validates the configuration. Sources are not read until the first
// run so a missing file surfaces per request.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if err := s.layout.Validate(); err != nil {
		return fmt.Errorf("pitch layout: %w", err)
	}
	if len(s.attributes) == 0 {
		return ErrNoAttributes
	}
	for _, a := range s.attributes {
		if _, ok := (model.Player{}).Skill(a); !ok {
			return fmt.Errorf("%w: %s", stats.ErrUnknownAttribute, a)
		}
	}

	s.started = true
	s.logger.Info(ctx, "roster service started",
		logger.String("club", s.clubName),
		logger.String("starting", sourceName(s.starting)),
		logger.String("bench", sourceName(s.bench)),
		logger.Int("buckets", len(s.layout.Buckets)),
		logger.Int("ageBins", s.ageBins),
	)
	return nil
}

// Stop marks the service as stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "roster service stopped")
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}

func sourceName(src roster.Source) string {
	if src == nil {
		return ""
	}
	return src.Name()
}

// run is the outcome of one pipeline pass.
type run struct {
	id         string
	roster     roster.Roster
	available  filter.Selection
	selection  filter.Selection
	filtered   []model.Player
	assignment pitch.Assignment
}

func (s *Service) run(ctx context.Context, q Query) (*run, error) {
	started := time.Now()
	r := &run{id: uuid.NewString()}
	log := s.log().With(logger.String("run_id", r.id))

	s.runs.Add(1)
	s.lastRun.Store(started.UnixNano())

	loaded, err := roster.Load(ctx, s.starting, s.bench)
	if err != nil {
		s.failures.Add(1)
		metrics.RecordPipelineRun(Outcome(err))
		log.Error(ctx, "roster load failed", logger.Error(err))
		return nil, err
	}
	r.roster = loaded
	metrics.UpdateRosterSize(loaded.Len())
	for _, id := range loaded.DuplicateIDs {
		metrics.RecordDuplicatePlayerID()
		log.Warn(ctx, "duplicate player id in roster", logger.Int("player_id", id))
	}

	r.available = filter.All(loaded.Players)
	r.selection = resolve(q, r.available)
	r.filtered = filter.Apply(loaded.Players, r.selection)
	metrics.UpdateFilteredSize(len(r.filtered))

	r.assignment = s.assigner.Assign(r.filtered)
	for _, p := range r.assignment.Unmapped {
		code := pitch.PrimaryPosition(p.PlayerPositions)
		metrics.RecordUnmappedPosition(code)
		log.Warn(ctx, "position has no pitch slot",
			logger.Int("player_id", p.PlayerID),
			logger.String("position", code),
		)
	}

	elapsed := time.Since(started)
	metrics.RecordPipelineRun(OutcomeOK)
	metrics.RecordPipelineDuration(float64(elapsed.Microseconds()) / 1000)
	log.Debug(ctx, "pipeline run complete",
		logger.Int("loaded", loaded.Len()),
		logger.Int("filtered", len(r.filtered)),
		logger.Int("unmapped", len(r.assignment.Unmapped)),
		logger.String("duration", elapsed.String()),
	)
	return r, nil
}

// resolve fills omitted query fields with every observed value.
func resolve(q Query, all filter.Selection) filter.Selection {
	pick := func(v, def []string) []string {
		if v == nil {
			return def
		}
		return v
	}
	return filter.Selection{
		Statuses:      pick(q.Statuses, all.Statuses),
		Positions:     pick(q.Positions, all.Positions),
		Nationalities: pick(q.Nationalities, all.Nationalities),
	}
}

// Outcome classifies a pipeline error for metrics and API responses.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, roster.ErrMissingSource):
		return OutcomeMissingSource
	case errors.Is(err, roster.ErrMalformedSource):
		return OutcomeMalformedSource
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	default:
		return OutcomeError
	}
}

// Options returns every filter value present in the loaded roster.
func (s *Service) Options(ctx context.Context) (filter.Selection, error) {
	r, err := s.run(ctx, Query{})
	if err != nil {
		return filter.Selection{}, err
	}
	return r.available, nil
}

// Dashboard runs the pipeline and derives every dashboard panel.
func (s *Service) Dashboard(ctx context.Context, q Query) (Dashboard, error) {
	r, err := s.run(ctx, q)
	if err != nil {
		return Dashboard{}, err
	}
	corr, err := stats.Correlation(r.filtered, s.attributes)
	if err != nil {
		return Dashboard{}, err
	}
	summary := stats.Summarize(r.filtered)

	d := Dashboard{
		RunID:             r.id,
		Club:              s.clubName,
		Available:         r.available,
		Selection:         r.selection,
		Summary:           summary,
		Display:           stats.Format(summary),
		Players:           r.assignment.Placements,
		Unmapped:          nonNil(r.assignment.Unmapped),
		Pitch:             startingPlacements(r.assignment.Placements),
		Bench:             stats.BenchTable(r.filtered),
		BestByPosition:    stats.BestByPosition(r.filtered),
		Correlation:       corr,
		AgeHistogram:      stats.AgeHistogram(r.filtered, s.ageBins),
		SalaryPerformance: stats.SalaryPerformance(r.filtered),
		Nationalities:     stats.NationalityPoints(r.filtered),
		GeoJSONURL:        s.geoJSONURL,
		DuplicateIDs:      nonNilInts(r.roster.DuplicateIDs),
	}
	return d, nil
}

// Roster returns the filtered players with their placements.
func (s *Service) Roster(ctx context.Context, q Query) (RosterView, error) {
	r, err := s.run(ctx, q)
	if err != nil {
		return RosterView{}, err
	}
	return RosterView{
		RunID:     r.id,
		Selection: r.selection,
		Players:   r.assignment.Placements,
		Unmapped:  nonNil(r.assignment.Unmapped),
	}, nil
}

// Pitch returns the placements of filtered starters.
func (s *Service) Pitch(ctx context.Context, q Query) ([]model.Placement, error) {
	r, err := s.run(ctx, q)
	if err != nil {
		return nil, err
	}
	return startingPlacements(r.assignment.Placements), nil
}

// PlayerCard returns the detail panel for a player in the filtered set.
func (s *Service) PlayerCard(ctx context.Context, q Query, id int) (Card, error) {
	r, err := s.run(ctx, q)
	if err != nil {
		return Card{}, err
	}
	p, ok := find(r.filtered, id)
	if !ok {
		return Card{}, fmt.Errorf("%w: %d", ErrPlayerNotFound, id)
	}
	card := Card{
		PlayerID:    p.PlayerID,
		Name:        p.ShortName,
		Nationality: p.NationalityName,
		Position:    p.GeneralPosition,
		Status:      p.Status,
		ValueEUR:    p.ValueEUR,
		WageEUR:     p.WageEUR,
		Value:       stats.FormatEUR(p.ValueEUR),
		Wage:        stats.FormatEUR(p.WageEUR),
		Attributes:  make([]AttributeScore, 0, len(s.attributes)),
		Image:       s.imageBase + "/" + strconv.Itoa(p.PlayerID) + ".jpg",
	}
	for _, a := range s.attributes {
		v, _ := p.Skill(a)
		card.Attributes = append(card.Attributes, AttributeScore{Attribute: a, Value: v})
	}
	return card, nil
}

// Compare returns radar data for two players in the filtered set.
func (s *Service) Compare(ctx context.Context, q Query, a, b int) (Comparison, error) {
	r, err := s.run(ctx, q)
	if err != nil {
		return Comparison{}, err
	}
	c := Comparison{
		Attributes: append([]model.Attribute(nil), s.attributes...),
		Min:        ratingMin,
		Max:        ratingMax,
		Players:    make([]RadarSeries, 0, 2),
	}
	for _, id := range []int{a, b} {
		p, ok := find(r.filtered, id)
		if !ok {
			return Comparison{}, fmt.Errorf("%w: %d", ErrPlayerNotFound, id)
		}
		series := RadarSeries{PlayerID: p.PlayerID, Name: p.ShortName, Values: make([]int, len(s.attributes))}
		for i, attr := range s.attributes {
			series.Values[i], _ = p.Skill(attr)
		}
		c.Players = append(c.Players, series)
	}
	return c, nil
}

// Export writes the filtered roster to w as an XLSX workbook.
func (s *Service) Export(ctx context.Context, q Query, w io.Writer) error {
	r, err := s.run(ctx, q)
	if err != nil {
		return err
	}
	if err := repository.WriteXLSX(w, s.exportSheet, r.filtered); err != nil {
		return fmt.Errorf("export roster: %w", err)
	}
	metrics.RecordExport()
	s.log().Info(ctx, "roster exported",
		logger.String("run_id", r.id),
		logger.Int("players", len(r.filtered)))
	return nil
}

// Layout returns the pitch layout in use.
func (s *Service) Layout() pitch.Layout { return s.layout }

// Attributes returns the skill columns in use.
func (s *Service) Attributes() []model.Attribute {
	return append([]model.Attribute(nil), s.attributes...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := map[string]interface{}{
		"started":    s.started,
		"club":       s.clubName,
		"starting":   sourceName(s.starting),
		"bench":      sourceName(s.bench),
		"runs":       s.runs.Load(),
		"failures":   s.failures.Load(),
		"attributes": len(s.attributes),
		"ageBins":    s.ageBins,
	}
	if n := s.lastRun.Load(); n > 0 {
		st["lastRun"] = time.Unix(0, n).UTC().Format(time.RFC3339)
	}
	return st
}

func startingPlacements(all []model.Placement) []model.Placement {
	out := make([]model.Placement, 0, len(all))
	for _, p := range all {
		if p.Status == model.StatusStarting {
			out = append(out, p)
		}
	}
	return out
}

func find(players []model.Player, id int) (model.Player, bool) {
	for _, p := range players {
		if p.PlayerID == id {
			return p, true
		}
	}
	return model.Player{}, false
}

func nonNil(p []model.Placement) []model.Placement {
	if p == nil {
		return []model.Placement{}
	}
	return p
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
