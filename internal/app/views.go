package service

import (
	"github.com/okian/pitchside/internal/domain/filter"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/stats"
)

// Query selects the players of one view. A nil field selects every
// observed value; a non-nil empty field selects nothing.
type Query struct {
	Statuses      []string
	Positions     []string
	Nationalities []string
}

// Dashboard is the full payload of one dashboard view.
type Dashboard struct {
	RunID             string                   `json:"run_id"`
	Club              string                   `json:"club"`
	Available         filter.Selection         `json:"available"`
	Selection         filter.Selection         `json:"selection"`
	Summary           stats.Summary            `json:"summary"`
	Display           stats.Display            `json:"display"`
	Players           []model.Placement        `json:"players"`
	Unmapped          []model.Placement        `json:"unmapped"`
	Pitch             []model.Placement        `json:"pitch"`
	Bench             []stats.BenchRow         `json:"bench"`
	BestByPosition    []model.Player           `json:"best_by_position"`
	Correlation       stats.Matrix             `json:"correlation"`
	AgeHistogram      []stats.Bin              `json:"age_histogram"`
	SalaryPerformance []stats.SalaryPoint      `json:"salary_performance"`
	Nationalities     []stats.NationalityPoint `json:"nationalities"`
	GeoJSONURL        string                   `json:"geojson_url,omitempty"`
	DuplicateIDs      []int                    `json:"duplicate_ids"`
}

// RosterView is the filtered roster with pitch placements.
type RosterView struct {
	RunID     string            `json:"run_id"`
	Selection filter.Selection  `json:"selection"`
	Players   []model.Placement `json:"players"`
	Unmapped  []model.Placement `json:"unmapped"`
}

// AttributeScore is one skill rating.
type AttributeScore struct {
	Attribute model.Attribute `json:"attribute"`
	Value     int             `json:"value"`
}

// Card is the player detail panel.
type Card struct {
	PlayerID    int              `json:"player_id"`
	Name        string           `json:"name"`
	Nationality string           `json:"nationality"`
	Position    string           `json:"position"`
	Status      model.Status     `json:"status"`
	ValueEUR    float64          `json:"value_eur"`
	WageEUR     float64          `json:"wage_eur"`
	Value       string           `json:"value"`
	Wage        string           `json:"wage"`
	Attributes  []AttributeScore `json:"attributes"`
	Image       string           `json:"image"`
}

// RadarSeries is one player's ratings in attribute order.
type RadarSeries struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Values   []int  `json:"values"`
}

// Comparison is the radar chart input for two players.
type Comparison struct {
	Attributes []model.Attribute `json:"attributes"`
	Min        int               `json:"min"`
	Max        int               `json:"max"`
	Players    []RadarSeries     `json:"players"`
}
